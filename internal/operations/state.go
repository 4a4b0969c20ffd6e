package operations

import (
	"sync"
	"time"

	"cricketcli/internal/charts"
	"cricketcli/internal/dataprocessing"
	"cricketcli/pkg/contracts/domain"
)

// OperationStatus represents the overall operation status
type OperationStatus string

const (
	OperationStatusPending   OperationStatus = "pending"
	OperationStatusRunning   OperationStatus = "running"
	OperationStatusCompleted OperationStatus = "completed"
	OperationStatusFailed    OperationStatus = "failed"
)

// OperationState represents the complete state of one pipeline run. Steps
// read their inputs from it and store their outputs on it.
type OperationState struct {
	mu sync.RWMutex

	ID        string          `json:"id"`
	Status    OperationStatus `json:"status"`
	StartTime time.Time       `json:"start_time"`
	EndTime   *time.Time      `json:"end_time,omitempty"`

	// Now is the reference time for age derivation
	Now time.Time `json:"now"`

	Steps map[string]*StepState `json:"steps"`

	Records     []domain.PlayerRecord   `json:"-"`
	TotalRows   int                     `json:"total_rows"`
	DroppedRows int                     `json:"dropped_rows"`
	Averages    []domain.CountryAverage `json:"-"`
	TopPlayers  []domain.PlayerRecord   `json:"-"`

	charts    map[string]*charts.Chart
	Dashboard *charts.Chart `json:"-"`

	Error error `json:"error,omitempty"`
}

// NewOperationState creates a new operation state
func NewOperationState(id string, now time.Time) *OperationState {
	return &OperationState{
		ID:     id,
		Status: OperationStatusPending,
		Now:    now,
		Steps:  make(map[string]*StepState),
		charts: make(map[string]*charts.Chart),
	}
}

// Start marks the operation as running
func (p *OperationState) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Status = OperationStatusRunning
	p.StartTime = time.Now()
}

// Complete marks the operation as completed
func (p *OperationState) Complete() {
	p.mu.Lock()
	defer p.mu.Unlock()
	now := time.Now()
	p.EndTime = &now
	p.Status = OperationStatusCompleted
}

// Fail marks the operation as failed
func (p *OperationState) Fail(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	now := time.Now()
	p.EndTime = &now
	p.Status = OperationStatusFailed
	p.Error = err
}

// GetStatus returns the operation status
func (p *OperationState) GetStatus() OperationStatus {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.Status
}

// Duration returns how long the operation ran
func (p *OperationState) Duration() time.Duration {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.StartTime.IsZero() {
		return 0
	}
	if p.EndTime != nil {
		return p.EndTime.Sub(p.StartTime)
	}
	return time.Since(p.StartTime)
}

// GetStage returns the state of a specific Step
func (p *OperationState) GetStage(stepID string) *StepState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.Steps[stepID]
}

// SetStage updates the state of a specific Step
func (p *OperationState) SetStage(stepID string, state *StepState) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Steps[stepID] = state
}

// SetLoadResult stores the cleaned records and row accounting
func (p *OperationState) SetLoadResult(result *dataprocessing.LoadResult) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Records = result.Records
	p.TotalRows = result.TotalRows
	p.DroppedRows = result.DroppedRows
}

// SetDerived stores the derived records and their aggregates
func (p *OperationState) SetDerived(records []domain.PlayerRecord, averages []domain.CountryAverage, top []domain.PlayerRecord) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Records = records
	p.Averages = averages
	p.TopPlayers = top
}

// SetDashboard stores the composed dashboard
func (p *OperationState) SetDashboard(dashboard *charts.Chart) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Dashboard = dashboard
}

// SetChart stores a rendered chart under its name
func (p *OperationState) SetChart(chart *charts.Chart) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.charts[chart.Name] = chart
}

// Chart returns the rendered chart with the given name, or nil
func (p *OperationState) Chart(name string) *charts.Chart {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.charts[name]
}

// Charts returns the rendered charts in the order of names. Charts not yet
// rendered are nil.
func (p *OperationState) Charts(names ...string) []*charts.Chart {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]*charts.Chart, len(names))
	for i, name := range names {
		out[i] = p.charts[name]
	}
	return out
}

// OutputFiles lists every file written during the run, charts first in
// dashboard order
func (p *OperationState) OutputFiles(order []string) []string {
	var files []string
	for _, c := range p.Charts(order...) {
		if c != nil {
			files = append(files, c.Path)
		}
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.Dashboard != nil {
		files = append(files, p.Dashboard.Path)
	}
	return files
}
