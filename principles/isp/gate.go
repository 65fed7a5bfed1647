// Package isp 接口隔离原则：按客户端划分细粒度的接口。
//
// Porter 只需要开关和状态，Warden 只需要上锁解锁；Gate 同时提供全部能力，
// 但每个客户端只看得到自己用到的那一部分。
package isp

// Opener 可打开
type Opener interface {
	Open()
}

// Closer 可关闭
type Closer interface {
	Close()
}

// OpenCloser 组合 Opener 与 Closer
type OpenCloser interface {
	Opener
	Closer
}

// Locker 可上锁
type Locker interface {
	Lock()
	Unlock()
}

// Gate 带锁的门：上锁时无法打开；给开着的门上锁会先把它关上
type Gate struct {
	open   bool
	locked bool
}

var (
	_ OpenCloser = (*Gate)(nil)
	_ Locker     = (*Gate)(nil)
)

// NewGate 创建关闭且未上锁的门
func NewGate() *Gate {
	return &Gate{}
}

// Open 未上锁时开门
func (g *Gate) Open() {
	if g.locked {
		return
	}
	g.open = true
}

// Close 关门
func (g *Gate) Close() {
	g.open = false
}

// Lock 上锁
func (g *Gate) Lock() {
	g.open = false
	g.locked = true
}

// Unlock 解锁
func (g *Gate) Unlock() {
	g.locked = false
}

// IsOpen 是否开着
func (g *Gate) IsOpen() bool { return g.open }

// IsLocked 是否上锁
func (g *Gate) IsLocked() bool { return g.locked }

// Passage Porter 需要的全部能力：开关，并能报告是否开着
type Passage interface {
	OpenCloser
	IsOpen() bool
}

var _ Passage = (*Gate)(nil)

// Porter 门卫：放人通过（开门再关门），只依赖 Passage
type Porter struct {
	door Passage
}

// NewPorter 创建门卫
func NewPorter(door Passage) *Porter {
	return &Porter{door: door}
}

// Pass 开门再关门，返回门是否真的打开过
func (p *Porter) Pass() bool {
	p.door.Open()
	opened := p.door.IsOpen()
	p.door.Close()
	return opened
}

// Warden 看守：只负责上锁与解锁，只依赖 Locker
type Warden struct {
	lock Locker
}

// NewWarden 创建看守
func NewWarden(lock Locker) *Warden {
	return &Warden{lock: lock}
}

// Secure 上锁
func (w *Warden) Secure() {
	w.lock.Lock()
}

// Release 解锁
func (w *Warden) Release() {
	w.lock.Unlock()
}
