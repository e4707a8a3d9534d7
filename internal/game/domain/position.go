package domain

import "math"

// Position 是不可变的二维坐标。
type Position struct {
	X float32 `json:"x" bson:"x"`
	Y float32 `json:"y" bson:"y"`
}

func NewPosition(x, y float32) Position {
	return Position{X: x, Y: y}
}

// DistanceTo 返回欧氏距离。
func (p Position) DistanceTo(other Position) float32 {
	dx := float64(p.X - other.X)
	dy := float64(p.Y - other.Y)
	return float32(math.Sqrt(dx*dx + dy*dy))
}
