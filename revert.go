package dragmerge

// RevertScheduler runs at most one deferred task. A task scheduled during
// update cycle N runs at the next RunPending call, which the host makes once
// per cycle after every other system had its turn. Scheduling again replaces
// the pending task; two reverts never stack.
type RevertScheduler struct {
	task    func()
	running bool
}

// ScheduleRevert cancels any pending task and queues task in its place.
func (r *RevertScheduler) ScheduleRevert(task func()) {
	r.task = task
}

// CancelPending drops the pending task. Reports whether one was pending.
func (r *RevertScheduler) CancelPending() bool {
	had := r.task != nil
	r.task = nil
	return had
}

// Pending reports whether a task is waiting to run.
func (r *RevertScheduler) Pending() bool {
	return r.task != nil
}

// RunPending runs the pending task exactly once. The slot is cleared before
// the task runs, so a task that schedules a follow-up leaves it for the next
// call instead of running it re-entrantly. Reports whether a task ran.
func (r *RevertScheduler) RunPending() bool {
	if r.task == nil || r.running {
		return false
	}
	task := r.task
	r.task = nil
	r.running = true
	defer func() { r.running = false }()
	task()
	return true
}
