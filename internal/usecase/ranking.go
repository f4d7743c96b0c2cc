package usecase

import (
	"sort"
	"strings"

	"hairconnect/internal/domain/entity"
)

// ListingFilter narrows the public listing. Nil ids and empty fields match
// everything.
type ListingFilter struct {
	TownID      *int
	EstateID    *int
	SubEstateID *int
	Services    []string
	Search      string
}

// Matcher selects the profiles an override rule moves.
type Matcher func(h *entity.Hairdresser) bool

// Placement reinserts the matched profiles into the remaining ranked list.
type Placement func(rest, matched []*entity.Hairdresser) []*entity.Hairdresser

// OverrideRule is a post-sort relocation. Rules run in table order.
type OverrideRule struct {
	Name      string
	Matcher   Matcher
	Placement Placement
}

// EmailEquals matches a profile email case-insensitively.
func EmailEquals(email string) Matcher {
	want := strings.ToLower(strings.TrimSpace(email))
	return func(h *entity.Hairdresser) bool {
		return want != "" && strings.ToLower(strings.TrimSpace(h.Email)) == want
	}
}

// AfterLastVIP puts the matched block right after the last remaining VIP, or
// at the head when there is none.
func AfterLastVIP(rest, matched []*entity.Hairdresser) []*entity.Hairdresser {
	insertAt := 0
	for i, h := range rest {
		if h.Plan() == entity.PlanVIP {
			insertAt = i + 1
		}
	}

	out := make([]*entity.Hairdresser, 0, len(rest)+len(matched))
	out = append(out, rest[:insertAt]...)
	out = append(out, matched...)
	out = append(out, rest[insertAt:]...)
	return out
}

// DefaultOverrideRules builds one AfterLastVIP rule per email.
func DefaultOverrideRules(emails []string) []OverrideRule {
	rules := make([]OverrideRule, 0, len(emails))
	for _, email := range emails {
		rules = append(rules, OverrideRule{
			Name:      "after-last-vip:" + strings.ToLower(email),
			Matcher:   EmailEquals(email),
			Placement: AfterLastVIP,
		})
	}
	return rules
}

// MatchesFilter applies the caller's filters to one eligible profile.
func MatchesFilter(h *entity.Hairdresser, f ListingFilter) bool {
	if f.TownID != nil && h.TownID != *f.TownID {
		return false
	}
	if f.EstateID != nil && h.EstateID != *f.EstateID {
		return false
	}
	if f.SubEstateID != nil && h.SubEstateID != *f.SubEstateID {
		return false
	}

	if len(f.Services) > 0 && !hasAnyService(h.Services, f.Services) {
		return false
	}

	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		if !strings.Contains(strings.ToLower(h.FullName), q) &&
			!strings.Contains(strings.ToLower(h.NickName), q) &&
			!anyServiceContains(h.Services, q) {
			return false
		}
	}
	return true
}

func hasAnyService(have, want []string) bool {
	for _, w := range want {
		for _, s := range have {
			if s == w {
				return true
			}
		}
	}
	return false
}

func anyServiceContains(services []string, q string) bool {
	for _, s := range services {
		if strings.Contains(strings.ToLower(s), q) {
			return true
		}
	}
	return false
}

// SortByTier orders by tier rank, then newest first. Profiles missing a
// creation date sort after dated ones in their tier and keep their input
// order among themselves.
func SortByTier(list []*entity.Hairdresser) {
	sort.SliceStable(list, func(i, j int) bool {
		ri, rj := list[i].Plan().Rank(), list[j].Plan().Rank()
		if ri != rj {
			return ri < rj
		}
		ci, cj := list[i].CreatedAt, list[j].CreatedAt
		switch {
		case ci == nil:
			return false
		case cj == nil:
			return true
		}
		return ci.After(*cj)
	})
}

// ApplyOverrides runs each rule over list. Rules with no match are no-ops.
func ApplyOverrides(list []*entity.Hairdresser, rules []OverrideRule) []*entity.Hairdresser {
	for _, rule := range rules {
		if rule.Matcher == nil || rule.Placement == nil {
			continue
		}

		var rest, matched []*entity.Hairdresser
		for _, h := range list {
			if rule.Matcher(h) {
				matched = append(matched, h)
			} else {
				rest = append(rest, h)
			}
		}
		if len(matched) == 0 {
			continue
		}
		list = rule.Placement(rest, matched)
	}
	return list
}

// Rank is the full listing pipeline over an in-memory candidate set:
// eligibility, filters, tier sort, overrides. The input is not modified.
func Rank(profiles []*entity.Hairdresser, filter ListingFilter, rules []OverrideRule) []*entity.Hairdresser {
	out := make([]*entity.Hairdresser, 0, len(profiles))
	for _, h := range profiles {
		if h == nil || !h.Listable() {
			continue
		}
		if MatchesFilter(h, filter) {
			out = append(out, h)
		}
	}

	SortByTier(out)
	return ApplyOverrides(out, rules)
}
