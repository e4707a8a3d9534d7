package main

import (
	"DotWars/internal/shared/serverconfig"
	"DotWars/internal/world/service"
)

func terrainPicker(cfg serverconfig.WorldGenConfig) service.TerrainPicker {
	if cfg.Picker == serverconfig.PickerNoise {
		return service.NewNoiseTerrainPicker(cfg.Seed, cfg.Width)
	}
	return service.ModuloTerrainPicker{}
}
