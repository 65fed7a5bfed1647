// Package srp 单一职责原则：一个类型应当只有一个引起它变化的原因。
//
// Door 只负责维护自身的开关状态；DoorOpener 只负责开门，DoorCloser 只负责关门，
// 二者都只依赖各自需要的那一个能力接口。
package srp

// CanBeOpened 可被打开
type CanBeOpened interface {
	Open()
}

// CanBeClosed 可被关闭
type CanBeClosed interface {
	Close()
}

// State 门的状态
type State int

const (
	Closed State = iota
	Open
)

func (s State) String() string {
	if s == Open {
		return "open"
	}
	return "closed"
}

// Door 封装开关状态，只能通过 Open/Close 修改。零值即为关闭的门。
type Door struct {
	open bool
}

var (
	_ CanBeOpened = (*Door)(nil)
	_ CanBeClosed = (*Door)(nil)
)

// NewDoor 创建一扇关闭的门
func NewDoor() *Door {
	return &Door{}
}

// Open 开门，重复调用无副作用
func (d *Door) Open() {
	d.open = true
}

// Close 关门，重复调用无副作用
func (d *Door) Close() {
	d.open = false
}

// IsOpen 门是否开着
func (d *Door) IsOpen() bool {
	return d.open
}

// State 当前状态
func (d *Door) State() State {
	if d.open {
		return Open
	}
	return Closed
}

// DoorOpener 只负责开门，不知道门里有什么，也不知道怎么关门
type DoorOpener struct {
	door CanBeOpened
}

// NewDoorOpener 创建开门者
func NewDoorOpener(door CanBeOpened) *DoorOpener {
	return &DoorOpener{door: door}
}

// Execute 开门
func (o *DoorOpener) Execute() {
	o.door.Open()
}

// DoorCloser 只负责关门，不知道门里有什么，也不知道怎么开门
type DoorCloser struct {
	door CanBeClosed
}

// NewDoorCloser 创建关门者
func NewDoorCloser(door CanBeClosed) *DoorCloser {
	return &DoorCloser{door: door}
}

// Execute 关门
func (c *DoorCloser) Execute() {
	c.door.Close()
}
