package pool

// Job is one unit of work handed to the pool. Run is called exactly once, by
// exactly one worker, and its result is not reported back to the submitter.
//
// Implementations should carry everything they need as fields (for example a
// connection and a store handle) so a Job can be built and run on its own in
// tests.
type Job interface {
	Run()
}

// JobFunc adapts a plain function to the Job interface.
type JobFunc func()

// Run calls f.
func (f JobFunc) Run() {
	f()
}
