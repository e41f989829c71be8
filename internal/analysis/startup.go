package analysis

import (
	"github.com/hbarsaiyan/indian-startup-funding-analysis/internal/core"
)

// Startup builds the startup view for an exact, case-sensitive name. An
// unknown name yields an empty profile with Found false; a lookup miss is
// not an error.
func (s *Snapshot) Startup(name string) core.StartupProfile {
	profile := core.StartupProfile{Name: name}

	positions, ok := s.byStartup[name]
	if !ok {
		return profile
	}
	profile.Found = true

	records := s.recordsAt(positions)

	// Descriptive fields come from the first record in source order, the
	// same row the original dashboard surfaces.
	first := records[0]
	profile.Vertical = first.Vertical
	profile.SubVertical = first.SubVertical
	profile.City = first.City
	profile.Round = first.Round

	seen := make(map[string]struct{})
	for _, inv := range records {
		profile.TotalFunding = profile.TotalFunding.Add(inv.Amount)
		for _, investor := range inv.Investors {
			if _, dup := seen[investor]; dup {
				continue
			}
			seen[investor] = struct{}{}
			profile.Investors = append(profile.Investors, investor)
		}
	}

	sortByDateDesc(records)
	profile.Investments = records

	profile.Similar = s.similarStartups(name, profile.Vertical)
	return profile
}

// similarStartups lists other startups in the given vertical, in
// first-appearance order.
func (s *Snapshot) similarStartups(exclude, vertical string) []string {
	if vertical == "" {
		return nil
	}
	var out []string
	seen := make(map[string]struct{})
	for _, inv := range s.records {
		if inv.Vertical != vertical || inv.Startup == exclude {
			continue
		}
		if _, dup := seen[inv.Startup]; dup {
			continue
		}
		seen[inv.Startup] = struct{}{}
		out = append(out, inv.Startup)
	}
	return out
}
