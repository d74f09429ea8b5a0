package output

import "time"

// LintOutput is the JSON document printed by `rtllint lint --format json`.
type LintOutput struct {
	Summary LintSummary      `json:"summary"`
	Files   []LintFileResult `json:"files"`
	RunID   string           `json:"run_id,omitempty"`
}

// LintSummary totals a lint run.
type LintSummary struct {
	Files      int  `json:"files"`
	Violations int  `json:"violations"`
	Findings   int  `json:"findings"`
	Errors     int  `json:"errors"`
	Passed     bool `json:"passed"`
}

// LintFileResult holds everything reported for one input file.
type LintFileResult struct {
	Path       string          `json:"path"`
	Disabled   bool            `json:"disabled,omitempty"`
	Targets    []string        `json:"targets,omitempty"`
	Findings   []LintFinding   `json:"findings,omitempty"`
	Violations []LintViolation `json:"violations,omitempty"`
	Errors     []string        `json:"errors,omitempty"`
}

// LintViolation is one rule violation.
type LintViolation struct {
	Module  string `json:"module"`
	Rule    string `json:"rule"`
	RuleID  string `json:"rule_id,omitempty"`
	Message string `json:"message"`
	Line    int    `json:"line"`
}

// LintFinding is one prohibited-construct finding.
type LintFinding struct {
	Path        string `json:"path"`
	Line        int    `json:"line"`
	Column      int    `json:"column"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Text        string `json:"text"`
}

// PreprocessOutput is the JSON document printed by `rtllint preprocess`.
type PreprocessOutput struct {
	Files []PreprocessFile `json:"files"`
}

// PreprocessFile describes the include closure of one input.
type PreprocessFile struct {
	Input    string              `json:"input"`
	Disabled bool                `json:"disabled,omitempty"`
	Targets  []string            `json:"targets"`
	Visited  []string            `json:"visited"`
	Comb     map[string][]string `json:"xprop_comb"`
	Seq      map[string][]string `json:"xprop_seq"`
	Findings []LintFinding       `json:"findings,omitempty"`
	TestMode bool                `json:"test_mode,omitempty"`
	Error    string              `json:"error,omitempty"`
}

// HistoryRun summarises one recorded lint run.
type HistoryRun struct {
	ID         string     `json:"id"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	Inputs     []string   `json:"inputs"`
	Status     string     `json:"status"`
	Violations int        `json:"violations"`
	Findings   int        `json:"findings"`
	Errors     int        `json:"errors"`
}

// HistoryDetail is one recorded run with its violations and findings.
type HistoryDetail struct {
	HistoryRun
	ViolationList []LintViolation `json:"violation_list"`
	FindingList   []LintFinding   `json:"finding_list"`
}
