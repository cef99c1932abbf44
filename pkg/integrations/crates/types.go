package crates

import "time"

// Response is the payload of GET /api/v1/crates/{name}.
//
// Optional text fields are pointers so that a JSON null or an absent key can
// be told apart from a required field that is missing entirely. Consumers
// should normalize through report.NewSummary instead of reading these
// directly.
type Response struct {
	Crate    *Crate    `json:"crate"`
	Versions []Version `json:"versions"`
	Keywords []Keyword `json:"keywords"`
}

// Crate is the "crate" object of a [Response].
type Crate struct {
	ID            string     `json:"id"`
	Name          *string    `json:"name"`
	MaxVersion    *string    `json:"max_version"`
	NewestVersion *string    `json:"newest_version"`
	Description   *string    `json:"description"`
	Homepage      *string    `json:"homepage"`
	Documentation *string    `json:"documentation"`
	Repository    *string    `json:"repository"`
	License       *string    `json:"license"`
	Downloads     uint64     `json:"downloads"`
	Keywords      []string   `json:"keywords"`
	CreatedAt     *time.Time `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at"`
}

// Version is one entry of the "versions" array.
type Version struct {
	ID        int                 `json:"id"`
	Num       string              `json:"num"`
	CreatedAt *time.Time          `json:"created_at"`
	Downloads uint64              `json:"downloads"`
	Yanked    bool                `json:"yanked"`
	Features  map[string][]string `json:"features"`
	License   *string             `json:"license"`
}

// Keyword is one entry of the top-level "keywords" array.
type Keyword struct {
	ID        string `json:"id"`
	Keyword   string `json:"keyword"`
	CratesCnt int    `json:"crates_cnt"`
}
