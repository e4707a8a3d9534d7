package main

import (
	"DotWars/internal/battle/entity"
	"DotWars/internal/battle/entity/domain"
	battleservice "DotWars/internal/battle/service"
	gd "DotWars/internal/game/domain"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

type skirmishOptions struct {
	attacker  string
	defender  string
	terrain   []string
	stopRule  string
	maxRounds int
	quiet     bool
}

type armyEntry struct {
	unitType domain.UnitType
	size     uint32
}

func newSkirmishCmd() *cobra.Command {
	opts := &skirmishOptions{}
	cmd := &cobra.Command{
		Use:   "skirmish",
		Short: "Fight a single battle locally and print the round log",
		Example: `  dotwars skirmish -a "Cavalry:100,Infantry:50" -d "Infantry:120" --terrain fortification
  dotwars skirmish -a "Special:Elephants:30" -d "Archers:80" --stop "DefenderActive == 0 || Turn >= 20"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSkirmish(cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().StringVarP(&opts.attacker, "attacker", "a", "Cavalry:100,Infantry:100", "Attacker army, Type:Size comma separated")
	cmd.Flags().StringVarP(&opts.defender, "defender", "d", "Infantry:150,Archers:60", "Defender army, Type:Size comma separated")
	cmd.Flags().StringSliceVar(&opts.terrain, "terrain", nil, "Terrain effects covering the field: highground, forest, river, fortification")
	cmd.Flags().StringVar(&opts.stopRule, "stop", battleservice.DefaultStopRule, "Stop rule expression")
	cmd.Flags().IntVar(&opts.maxRounds, "max-rounds", 1000, "Hard cap on rounds")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "Only print the final report")
	return cmd
}

func runSkirmish(out io.Writer, opts *skirmishOptions) error {
	titleColor := color.New(color.FgCyan, color.Bold)
	successColor := color.New(color.FgGreen, color.Bold)
	warnColor := color.New(color.FgYellow)

	attackerArmy, err := parseArmy(opts.attacker)
	if err != nil {
		return fmt.Errorf("attacker: %w", err)
	}
	defenderArmy, err := parseArmy(opts.defender)
	if err != nil {
		return fmt.Errorf("defender: %w", err)
	}
	field := domain.Battlefield{Width: 1000, Height: 1000}
	for _, name := range opts.terrain {
		kind, err := parseTerrainEffect(name)
		if err != nil {
			return err
		}
		field.TerrainEffects = append(field.TerrainEffects, domain.TerrainEffect{
			Position:   gd.NewPosition(500, 500),
			Radius:     1000,
			EffectType: kind,
		})
	}

	stop, err := battleservice.CompileStopPolicy(opts.stopRule)
	if err != nil {
		return err
	}
	svc := battleservice.NewBattleService(stop, nil)
	reg := battleservice.NewUnitRegistry()
	b := domain.NewBattle("skirmish", gd.NewFactionID(), gd.NewFactionID(), field)

	for _, side := range []struct {
		faction gd.FactionID
		army    []armyEntry
		x       float32
	}{
		{b.Attacker, attackerArmy, 100},
		{b.Defender, defenderArmy, 900},
	} {
		for i, e := range side.army {
			u := domain.NewUnit(side.faction, e.unitType, e.size, domain.MaxMorale)
			pos := gd.NewPosition(side.x, float32(100+i*50))
			if _, err := svc.Deploy(b, reg, u, domain.NewCombatStats(e.unitType), pos); err != nil {
				return err
			}
		}
	}
	if err := b.BeginCombat(); err != nil {
		return err
	}

	titleColor.Fprintf(out, "Skirmish: %s vs %s\n", opts.attacker, opts.defender)
	var last *battleservice.RoundReport
	for i := 0; i < opts.maxRounds && !b.IsResolved(); i++ {
		last, err = svc.RunRound(context.Background(), b, reg)
		if err != nil {
			return err
		}
		if !opts.quiet {
			printRound(out, last)
		}
	}
	if !b.IsResolved() {
		warnColor.Fprintf(out, "battle not resolved after %d rounds\n", opts.maxRounds)
		return nil
	}

	report, err := svc.Conclude(b, reg, last, time.Now())
	if err != nil {
		return err
	}
	fmt.Fprintln(out)
	switch {
	case report.Winner == nil:
		warnColor.Fprintf(out, "Draw after %d rounds (%s)\n", report.Turns, report.Reason)
	case *report.Winner == b.Attacker:
		successColor.Fprintf(out, "Attacker wins after %d rounds (%s)\n", report.Turns, report.Reason)
	default:
		successColor.Fprintf(out, "Defender wins after %d rounds (%s)\n", report.Turns, report.Reason)
	}
	return renderOutcomes(out, report)
}

func printRound(out io.Writer, r *battleservice.RoundReport) {
	var casualties [2]uint32
	routed := 0
	for _, s := range r.Strikes {
		// 伤亡记在被打的一方
		if s.Side == domain.SideAttacker {
			casualties[domain.SideDefender] += s.Casualties
		} else {
			casualties[domain.SideAttacker] += s.Casualties
		}
		if s.Routed {
			routed++
		}
	}
	fmt.Fprintf(out, "round %3d  strikes=%-3d attacker_lost=%-5d defender_lost=%-5d routed=%d\n",
		r.Turn, len(r.Strikes), casualties[domain.SideAttacker], casualties[domain.SideDefender], routed)
}

func renderOutcomes(out io.Writer, r *entity.BattleReport) error {
	table := tablewriter.NewTable(out,
		tablewriter.WithHeader([]string{"Side", "Unit", "Formation", "Count", "Morale", "Routed"}),
	)
	for _, o := range r.Units {
		row := []string{
			o.Side.String(),
			o.Unit.UnitType.String(),
			o.Unit.Formation.String(),
			fmt.Sprintf("%d/%d", o.Unit.Count, o.Unit.MaxCount),
			fmt.Sprintf("%.1f", o.Unit.Morale),
			strconv.FormatBool(o.Routed),
		}
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}

// parseArmy 解析 "Cavalry:100,Special:Elephants:30"。
func parseArmy(s string) ([]armyEntry, error) {
	var out []armyEntry
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		idx := strings.LastIndex(part, ":")
		if idx <= 0 {
			return nil, fmt.Errorf("bad army entry %q, want Type:Size", part)
		}
		ut, err := domain.ParseUnitType(part[:idx])
		if err != nil {
			return nil, err
		}
		size, err := strconv.ParseUint(part[idx+1:], 10, 32)
		if err != nil || size == 0 {
			return nil, fmt.Errorf("bad army size in %q", part)
		}
		out = append(out, armyEntry{unitType: ut, size: uint32(size)})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("empty army")
	}
	return out, nil
}

func parseTerrainEffect(name string) (domain.TerrainEffectType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "highground", "high_ground":
		return domain.HighGround(0.25), nil
	case "forest":
		return domain.Forest(0.2), nil
	case "river":
		return domain.River(0.5), nil
	case "fortification", "fort":
		return domain.Fortification(0.5, 0.1), nil
	default:
		return domain.TerrainEffectType{}, fmt.Errorf("unknown terrain effect %q", name)
	}
}
