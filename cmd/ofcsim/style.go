package main

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/lazharichir/ofc/domain"
)

// handReport renders every board of a settled hand followed by the showdown
func handReport(g *domain.Game) (string, error) {
	view := g.BuildView("")

	var b strings.Builder
	b.WriteString(pterm.DefaultSection.Sprintf("Hand %d", view.HandNumber))

	for _, p := range view.Players {
		box, err := playerBox(p)
		if err != nil {
			return "", err
		}
		b.WriteString(box)
		b.WriteString("\n")
	}

	showdown, err := showdownTable(view)
	if err != nil {
		return "", err
	}
	b.WriteString(showdown)
	b.WriteString("\n")
	b.WriteString(view.Message)

	return b.String(), nil
}

func playerBox(p domain.PlayerView) (string, error) {
	data := pterm.TableData{{"Line", "Cards", "Combination", "Royalty"}}
	for _, line := range p.Lines {
		royalty := "-"
		if line.Royalty != nil {
			royalty = line.Royalty.Label
		}
		data = append(data, []string{string(line.Name), strings.Join(line.Slots, " "), line.Combination, royalty})
	}

	lines, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return "", err
	}

	status := pterm.LightGreen("Clean")
	if p.IsFoul {
		status = pterm.LightRed("Foul")
	}
	dealer := ""
	if p.IsDealer {
		dealer = " (D)"
	}
	title := pterm.LightCyan(fmt.Sprintf("|%s%s|", p.Name, dealer))
	summary := pterm.Sprintfln("%s  royalties %d  change %+d  score %d", status, p.RoyaltyTotal, p.LastRoundScoreChange, p.Score)

	return pterm.DefaultBox.WithTitle(title).WithTitleTopCenter().Sprint(lines + "\n" + summary), nil
}

func showdownTable(view domain.GameView) (string, error) {
	names := make(map[string]string, len(view.Players))
	for _, p := range view.Players {
		names[p.ID] = p.Name
	}

	data := pterm.TableData{{"Pair", "Top", "Middle", "Bottom", "Scoop", "Lines", "Royalties", "Net"}}
	for _, r := range view.ShowdownResults {
		scoop := ""
		switch {
		case r.ScoopA:
			scoop = names[r.PlayerA]
		case r.ScoopB:
			scoop = names[r.PlayerB]
		}
		data = append(data, []string{
			names[r.PlayerA] + " v " + names[r.PlayerB],
			outcome(r.Lines[domain.LineTop]),
			outcome(r.Lines[domain.LineMiddle]),
			outcome(r.Lines[domain.LineBottom]),
			scoop,
			fmt.Sprintf("%d-%d", r.LinePointsA, r.LinePointsB),
			fmt.Sprintf("%d-%d", r.RoyaltyA, r.RoyaltyB),
			fmt.Sprintf("%+d", r.NetA),
		})
	}

	return pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Srender()
}

func outcome(o int) string {
	switch {
	case o > 0:
		return "win"
	case o < 0:
		return "loss"
	default:
		return "tie"
	}
}
