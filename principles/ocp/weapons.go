// Package ocp 开闭原则：应当可以扩展一个类型的行为，而不必修改它。
//
// WeaponsComposite 只认识 CanShoot；增加 RocketLauncher 时，
// 现有的 LaserBeam 与 WeaponsComposite 都不需要任何改动。
package ocp

import "solid/capability"

// CanShoot 可以开火
type CanShoot interface {
	Shoot() string
}

// LaserBeam 激光
type LaserBeam struct{}

var _ CanShoot = LaserBeam{}

// Shoot 开火
func (LaserBeam) Shoot() string {
	return "Ziiiiiip!"
}

// RocketLauncher 火箭筒
type RocketLauncher struct{}

var _ CanShoot = RocketLauncher{}

// Shoot 发射火箭
func (RocketLauncher) Shoot() string {
	return "Whoosh!"
}

// WeaponsComposite 持有一组武器，并能一次性全部开火
type WeaponsComposite struct {
	weapons *capability.Aggregate[CanShoot, string]
}

// NewWeaponsComposite 创建武器组合；替换武器需要构造新的组合
func NewWeaponsComposite(weapons ...CanShoot) *WeaponsComposite {
	return &WeaponsComposite{
		weapons: capability.NewAggregate(CanShoot.Shoot, weapons...),
	}
}

// Shoot 按持有顺序让每件武器开火一次，结果与武器一一对应
func (c *WeaponsComposite) Shoot() []string {
	return c.weapons.Invoke()
}

// Len 武器数量
func (c *WeaponsComposite) Len() int {
	return c.weapons.Len()
}

// Weapons 返回武器列表的副本
func (c *WeaponsComposite) Weapons() []CanShoot {
	return c.weapons.Items()
}
