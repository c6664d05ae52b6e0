package kpi

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"fc-manager-backend/internal/model"
)

// ManyPlayStylesThreshold is the play style count from which a player is
// listed among the most versatile.
const ManyPlayStylesThreshold = 7

// CategoryShare is the size of one category within a squad.
type CategoryShare struct {
	Category   string `json:"category"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

// Composition partitions a squad by status and, independently, by origin.
// Categories appear in their fixed display order, including empty ones.
type Composition struct {
	Total    int             `json:"total"`
	ByStatus []CategoryShare `json:"by_status"`
	ByOrigin []CategoryShare `json:"by_origin"`
}

// SquadKPIs are the headline figures of a squad.
type SquadKPIs struct {
	TotalPlayers      int `json:"total_players"`
	AcademyPercentage int `json:"academy_percentage"`
	AverageOverall    int `json:"average_ovr"`
	ManyPlayStyles    int `json:"players_7plus_playstyles"`
}

// Percentage returns value as a rounded share of total, or 0 when total is 0.
func Percentage(value, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(value) / float64(total) * 100))
}

// SquadComposition counts players per status and per origin.
func SquadComposition(players []model.Player) Composition {
	statusCounts := make(map[model.PlayerStatus]int, len(model.PlayerStatuses))
	originCounts := make(map[model.PlayerOrigin]int, len(model.PlayerOrigins))
	for _, p := range players {
		statusCounts[p.Status]++
		originCounts[p.Origin]++
	}

	total := len(players)
	c := Composition{
		Total:    total,
		ByStatus: make([]CategoryShare, 0, len(model.PlayerStatuses)),
		ByOrigin: make([]CategoryShare, 0, len(model.PlayerOrigins)),
	}
	for _, s := range model.PlayerStatuses {
		n := statusCounts[s]
		c.ByStatus = append(c.ByStatus, CategoryShare{Category: string(s), Count: n, Percentage: Percentage(n, total)})
	}
	for _, o := range model.PlayerOrigins {
		n := originCounts[o]
		c.ByOrigin = append(c.ByOrigin, CategoryShare{Category: string(o), Count: n, Percentage: Percentage(n, total)})
	}
	return c
}

// AverageOverall returns the rounded mean OVR, or 0 for an empty squad.
func AverageOverall(players []model.Player) int {
	if len(players) == 0 {
		return 0
	}
	sum := 0
	for _, p := range players {
		sum += p.OVR
	}
	return int(math.Round(float64(sum) / float64(len(players))))
}

// Squad returns the headline KPIs of players.
func Squad(players []model.Player) SquadKPIs {
	academy, versatile := 0, 0
	for _, p := range players {
		if p.Origin == model.OriginAcademy {
			academy++
		}
		if p.PlayStyles >= ManyPlayStylesThreshold {
			versatile++
		}
	}
	return SquadKPIs{
		TotalPlayers:      len(players),
		AcademyPercentage: Percentage(academy, len(players)),
		AverageOverall:    AverageOverall(players),
		ManyPlayStyles:    versatile,
	}
}

// Tier grades the headroom between a player's current and ceiling rating.
type Tier int

const (
	AtPeak Tier = iota
	SomePotential
	MediumPotential
	HighPotential
)

var tierNames = [...]string{"at_peak", "some_potential", "medium_potential", "high_potential"}

func (t Tier) String() string {
	if t < AtPeak || t > HighPotential {
		return "unknown"
	}
	return tierNames[t]
}

// MarshalText encodes the tier by name.
func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText decodes a tier name written by MarshalText.
func (t *Tier) UnmarshalText(text []byte) error {
	for i, name := range tierNames {
		if name == string(text) {
			*t = Tier(i)
			return nil
		}
	}
	return fmt.Errorf("unknown potential tier %q", text)
}

// Stars is the number of stars shown next to the rating.
func (t Tier) Stars() int {
	return int(t)
}

// PotentialTier grades potential − ovr, highest threshold first.
func PotentialTier(ovr, potential int) Tier {
	diff := potential - ovr
	switch {
	case diff >= 10:
		return HighPotential
	case diff >= 5:
		return MediumPotential
	case diff > 0:
		return SomePotential
	default:
		return AtPeak
	}
}

// FormatRating renders ovr followed by one star per tier level.
func FormatRating(ovr, potential int) string {
	stars := PotentialTier(ovr, potential).Stars()
	if stars == 0 {
		return strconv.Itoa(ovr)
	}
	return strconv.Itoa(ovr) + " " + strings.Repeat("⭐", stars)
}

// TierCounts counts players per potential tier.
func TierCounts(players []model.Player) map[Tier]int {
	counts := make(map[Tier]int, len(tierNames))
	for t := AtPeak; t <= HighPotential; t++ {
		counts[t] = 0
	}
	for _, p := range players {
		counts[PotentialTier(p.OVR, p.Potential)]++
	}
	return counts
}
