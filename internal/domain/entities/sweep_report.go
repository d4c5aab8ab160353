package entities

// RepositoryOutcome records what happened to the caches of one repository
// during a sweep.
type RepositoryOutcome struct {
	Repository Repository
	Found      int
	Deleted    []int64
	Failed     []int64
	Skipped    []int64 // listed but left in place (dry-run)
	ListErr    error
}

// HasCaches reports whether any cache was listed for the repository.
func (o RepositoryOutcome) HasCaches() bool {
	return o.Found > 0
}

// SweepReport aggregates the outcomes of a sweep over one organization,
// in the order the repositories were processed.
type SweepReport struct {
	Organization string
	DryRun       bool
	Outcomes     []RepositoryOutcome
}

// NewSweepReport creates an empty report for the given organization.
func NewSweepReport(organization string, dryRun bool) *SweepReport {
	return &SweepReport{
		Organization: organization,
		DryRun:       dryRun,
	}
}

// Add appends the outcome of one repository.
func (r *SweepReport) Add(outcome RepositoryOutcome) {
	r.Outcomes = append(r.Outcomes, outcome)
}

// Repositories returns the number of repositories processed.
func (r *SweepReport) Repositories() int {
	return len(r.Outcomes)
}

// Deleted returns the number of caches deleted across all repositories.
func (r *SweepReport) Deleted() int {
	total := 0
	for _, o := range r.Outcomes {
		total += len(o.Deleted)
	}
	return total
}

// Failures counts failed deletions plus repositories whose cache listing
// ended with an error.
func (r *SweepReport) Failures() int {
	total := 0
	for _, o := range r.Outcomes {
		total += len(o.Failed)
		if o.ListErr != nil {
			total++
		}
	}
	return total
}

// Skipped returns the number of caches left in place by a dry-run.
func (r *SweepReport) Skipped() int {
	total := 0
	for _, o := range r.Outcomes {
		total += len(o.Skipped)
	}
	return total
}
