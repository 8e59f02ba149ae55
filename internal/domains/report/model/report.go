package model

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	entryModel "dbtrain-backend/internal/domains/entry/model"
	"dbtrain-backend/internal/shared"
)

// Fixed parameters of the report queries
const (
	FemaleGender  = "ж"
	StageMin      = 1
	StageMax      = 5
	YoungAgeLimit = 25

	// RatioPlaces is the number of decimal places kept in the agreement ratio
	RatioPlaces = 4
)

// TaggedNames are the tag names selected by answer 3
var TaggedNames = []string{"Кино", "Музыка"}

// Report holds the ten answers, computed from one consistent snapshot
type Report struct {
	// Answer1 - usernames with the highest self esteem
	Answer1 []string `json:"answer1"`
	// Answer2 - authors tied for the most entries
	Answer2 []AuthorEntryCount `json:"answer2"`
	// Answer3 - entries tagged with any of TaggedNames
	Answer3 []entryModel.Entry `json:"answer3"`
	// Answer4 - number of female authors
	Answer4 int64 `json:"answer4"`
	// Answer5 - share of authors who agreed with the rules
	Answer5 RuleAgreement `json:"answer5"`
	// Answer6 - profiles with stage in [StageMin, StageMax]
	Answer6 []ProfileStage `json:"answer6"`
	// Answer7 - oldest known age, null when no author has one
	Answer7 *int `json:"answer7"`
	// Answer8 - authors with a phone number
	Answer8 int64 `json:"answer8"`
	// Answer9 - authors younger than YoungAgeLimit
	Answer9 []AuthorAge `json:"answer9"`
	// Answer10 - entry count of every author
	Answer10 []AuthorEntryCount `json:"answer10"`

	GeneratedAt time.Time `json:"generated_at"`
}

type AuthorEntryCount struct {
	AuthorID uuid.UUID `json:"author_id"`
	Username string    `json:"username"`
	Entries  int64     `json:"entries"`
}

// RuleAgreement is agreed/total; Ratio is nil and Defined false when there are no authors
type RuleAgreement struct {
	Agreed  int64            `json:"agreed"`
	Total   int64            `json:"total"`
	Ratio   *decimal.Decimal `json:"ratio"`
	Defined bool             `json:"defined"`
}

type ProfileStage struct {
	ProfileID uuid.UUID `json:"profile_id"`
	AuthorID  uuid.UUID `json:"author_id"`
	Username  string    `json:"username"`
	Stage     int       `json:"stage"`
}

type AuthorAge struct {
	AuthorID uuid.UUID `json:"author_id"`
	Username string    `json:"username"`
	Age      int       `json:"age"`
}

// AgreementRatio divides agreed by total, guarding the empty population
func AgreementRatio(agreed, total int64) RuleAgreement {
	out := RuleAgreement{Agreed: agreed, Total: total}
	if total <= 0 {
		return out
	}
	ratio := decimal.NewFromInt(agreed).DivRound(decimal.NewFromInt(total), RatioPlaces)
	out.Ratio = &ratio
	out.Defined = true
	return out
}

// TopByCount keeps the authors tied at the highest entry count, ordered by username.
// Authors without entries never qualify.
func TopByCount(counts []AuthorEntryCount) []AuthorEntryCount {
	var max int64
	for _, c := range counts {
		if c.Entries > max {
			max = c.Entries
		}
	}

	top := []AuthorEntryCount{}
	if max == 0 {
		return top
	}
	for _, c := range counts {
		if c.Entries == max {
			top = append(top, c)
		}
	}
	sort.SliceStable(top, func(i, j int) bool { return top[i].Username < top[j].Username })
	return top
}

// SortEntryCounts orders by entry count descending, then username ascending
func SortEntryCounts(counts []AuthorEntryCount) {
	sort.SliceStable(counts, func(i, j int) bool {
		if counts[i].Entries != counts[j].Entries {
			return counts[i].Entries > counts[j].Entries
		}
		return counts[i].Username < counts[j].Username
	})
}

var ErrSnapshotNotFound = &shared.NotFoundError{Entity: "report snapshot"}
