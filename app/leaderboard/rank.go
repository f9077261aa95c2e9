package leaderboard

import (
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Entry is one user's standing before ranking.
type Entry struct {
	UserID      uuid.UUID `json:"user_id"`
	DisplayName string    `json:"display_name"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	Balance     int64     `json:"balance"`
}

type RankedEntry struct {
	Entry
	Rank    int    `json:"rank"`
	Ordinal string `json:"ordinal"`
}

// Rank orders entries by balance descending and assigns standard competition ranks:
// equal balances share a rank and the next rank skips ahead ([100,100,90] -> 1,1,3).
// Ties are listed by display name, then user id. The input is not modified.
func Rank(entries []Entry) []RankedEntry {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Balance != b.Balance {
			return a.Balance > b.Balance
		}
		if a.DisplayName != b.DisplayName {
			return strings.ToLower(a.DisplayName) < strings.ToLower(b.DisplayName)
		}
		return a.UserID.String() < b.UserID.String()
	})

	ranked := make([]RankedEntry, len(sorted))
	for i, e := range sorted {
		rank := i + 1
		if i > 0 && e.Balance == sorted[i-1].Balance {
			rank = ranked[i-1].Rank
		}
		ranked[i] = RankedEntry{Entry: e, Rank: rank, Ordinal: Ordinal(rank)}
	}
	return ranked
}

// Ordinal renders n as 1st, 2nd, 3rd, 4th, 11th, 12th, 13th, 21st and so on.
func Ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}
