package service

import (
	"DotWars/internal/world/entity/domain"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// TerrainPicker 把省份序号映射成地形，必须是纯函数：同样的输入永远给出同样的地形。
type TerrainPicker interface {
	Pick(seed uint32) domain.TerrainType
}

// ModuloTerrainPicker seed % 6，与旧存档兼容的默认实现。
type ModuloTerrainPicker struct{}

func (ModuloTerrainPicker) Pick(seed uint32) domain.TerrainType {
	return domain.TerrainKinds[seed%uint32(len(domain.TerrainKinds))]
}

// NoiseTerrainPicker 按网格坐标采样 simplex 噪声，相邻省份的地形更连贯。
// 同一 worldSeed 和 width 下结果可复现。
type NoiseTerrainPicker struct {
	noise     opensimplex.Noise
	width     uint32
	frequency float64
	octaves   int
}

func NewNoiseTerrainPicker(worldSeed int64, width uint32) *NoiseTerrainPicker {
	if width == 0 {
		width = 1
	}
	return &NoiseTerrainPicker{
		noise:     opensimplex.NewNormalized(worldSeed),
		width:     width,
		frequency: 0.35,
		octaves:   3,
	}
}

func (p *NoiseTerrainPicker) Pick(seed uint32) domain.TerrainType {
	x := float64(seed % p.width)
	y := float64(seed / p.width)
	v := octaveNoise(p.noise, x, y, p.octaves, p.frequency, 0.5)
	n := len(domain.TerrainKinds)
	idx := int(v * float64(n))
	if idx < 0 {
		idx = 0
	}
	if idx >= n {
		idx = n - 1
	}
	return domain.TerrainKinds[idx]
}

// octaveNoise 多层频率叠加，结果仍在 [0,1]。
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0
	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}
	return total / maxVal
}
