package models

import "time"

type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusDone    Status = "done"
)

type RankingScope string

const (
	RankingScopeWeekly  RankingScope = "weekly"
	RankingScopeMonthly RankingScope = "monthly"
	RankingScopeAll     RankingScope = "all"
)

type Circle struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	InviteCode string    `json:"invite_code"`
	CreatedAt  time.Time `json:"created_at"`
}

type Member struct {
	ID        string    `json:"id"`
	CircleID  string    `json:"circle_id"`
	Name      string    `json:"name"`
	AvatarRef string    `json:"avatar_ref"`
	JoinedAt  time.Time `json:"joined_at"`
}

// Chore is a unit of household work. Points is the workload weight and the
// reward value; zero means the value was never set.
type Chore struct {
	ID        string    `json:"id"`
	CircleID  string    `json:"circle_id"`
	Title     string    `json:"title"`
	Points    int       `json:"points"`
	Recurring bool      `json:"recurring"`
	Frequency Frequency `json:"frequency"`
	Icon      string    `json:"icon,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FairnessState is the cumulative allocation bookkeeping of one circle.
type FairnessState struct {
	MemberPoints     map[string]int `json:"member_points"`
	TieCursor        int            `json:"tie_cursor"`
	RecurringNextIdx map[string]int `json:"recurring_next_idx"`
}

type Cycle struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Key   string    `json:"key"`
}

// AssignmentMap maps chore ids to member ids for one cycle.
type AssignmentMap map[string]string

// CompletionStatus is keyed by StatusKey(cycleKey, choreID). Absent means pending.
type CompletionStatus map[string]Status

func StatusKey(cycleKey, choreID string) string {
	return cycleKey + ":" + choreID
}

type HistoryEntry struct {
	ID        string    `json:"id"`
	MemberID  string    `json:"member_id"`
	Timestamp time.Time `json:"timestamp"`
	CycleKey  string    `json:"cycle_key"`
	ChoreID   string    `json:"chore_id"`
	Title     string    `json:"title"`
	Points    int       `json:"points"`
}

type GroceryItem struct {
	ID        string    `json:"id"`
	CircleID  string    `json:"circle_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}
