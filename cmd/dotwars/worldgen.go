package main

import (
	gd "DotWars/internal/game/domain"
	"DotWars/internal/shared/serverconfig"
	"DotWars/internal/world/entity"
	worldservice "DotWars/internal/world/service"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

type worldgenOptions struct {
	width     uint32
	height    uint32
	provinces uint32
	seed      int64
	picker    string
	factions  []string
	turns     int
}

func newWorldgenCmd() *cobra.Command {
	opts := &worldgenOptions{}
	cmd := &cobra.Command{
		Use:   "worldgen",
		Short: "Generate a world map and optionally simulate a few turns",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorldgen(cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().Uint32VarP(&opts.width, "width", "W", 4, "Grid width")
	cmd.Flags().Uint32VarP(&opts.height, "height", "H", 4, "Grid height")
	cmd.Flags().Uint32VarP(&opts.provinces, "provinces", "p", 16, "Number of provinces")
	cmd.Flags().Int64VarP(&opts.seed, "seed", "s", 1, "World seed (noise picker only)")
	cmd.Flags().StringVar(&opts.picker, "picker", string(serverconfig.PickerModulo), "Terrain picker: modulo or noise")
	cmd.Flags().StringSliceVarP(&opts.factions, "factions", "f", []string{"Red", "Blue"}, "Faction names")
	cmd.Flags().IntVarP(&opts.turns, "turns", "t", 0, "Turns to simulate after generation")
	return cmd
}

func runWorldgen(out io.Writer, opts *worldgenOptions) error {
	titleColor := color.New(color.FgCyan, color.Bold)
	infoColor := color.New(color.FgYellow)

	kind := serverconfig.TerrainPickerKind(strings.ToLower(opts.picker))
	if kind != serverconfig.PickerModulo && kind != serverconfig.PickerNoise {
		return fmt.Errorf("unknown terrain picker %q", opts.picker)
	}
	picker := terrainPicker(serverconfig.WorldGenConfig{Picker: kind, Seed: opts.seed, Width: opts.width})

	svc := worldservice.NewWorldService()
	w := svc.GenerateWorld(1, worldservice.NewWorldGenerator(picker), worldservice.WorldSpec{
		Seed:      opts.seed,
		Width:     opts.width,
		Height:    opts.height,
		Provinces: opts.provinces,
		Factions:  opts.factions,
	})

	titleColor.Fprintf(out, "World %dx%d, %d provinces, picker=%s\n\n", opts.width, opts.height, w.Map().Len(), kind)
	if err := renderProvinces(out, w); err != nil {
		return err
	}

	for i := 0; i < opts.turns; i++ {
		svc.AdvanceTurn(context.Background(), w)
	}
	if opts.turns > 0 {
		infoColor.Fprintf(out, "\nAfter %d turns:\n", w.Turn())
	}
	fmt.Fprintln(out)
	return renderFactions(out, w)
}

func renderProvinces(out io.Writer, w *entity.World) error {
	table := tablewriter.NewTable(out,
		tablewriter.WithHeader([]string{"#", "Name", "Terrain", "Owner", "Neighbors", "Population", "Income"}),
	)
	for i, p := range w.Map().Provinces() {
		owner := "-"
		if p.Owner != nil {
			if f, ok := w.Faction(*p.Owner); ok {
				owner = f.Name
			}
		}
		row := []string{
			fmt.Sprintf("%d", i),
			p.Name,
			p.TerrainType.String(),
			owner,
			fmt.Sprintf("%d", len(p.AdjacentProvinces)),
			fmt.Sprintf("%d", p.Population),
			formatResource(p.Income()),
		}
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}

func renderFactions(out io.Writer, w *entity.World) error {
	table := tablewriter.NewTable(out,
		tablewriter.WithHeader([]string{"Faction", "Color", "Provinces", "Income/turn", "Treasury"}),
	)
	for _, f := range w.Factions() {
		row := []string{
			f.Name,
			f.Color,
			fmt.Sprintf("%d", len(w.Map().FactionProvinces(f.ID))),
			formatResource(w.Map().CalculateFactionIncome(f.ID)),
			formatResource(f.Treasury),
		}
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}

func formatResource(r gd.Resource) string {
	return fmt.Sprintf("G:%d F:%d M:%d P:%d", r.Gold, r.Food, r.Materials, r.Manpower)
}
