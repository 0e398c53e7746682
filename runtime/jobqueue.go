package runtime

// JobQueue holds Promise reaction jobs, matching ECMAScript's run-to-completion
// model: a reaction is never invoked synchronously from resolve/reject or from
// .then() on an already-settled promise, it is enqueued and only runs once the
// currently executing script finishes (or an embedder explicitly drains the
// queue). One JobQueue belongs to one Context.
type JobQueue struct {
	jobs []func()
}

// Enqueue appends job to the end of the queue.
func (q *JobQueue) Enqueue(job func()) {
	q.jobs = append(q.jobs, job)
}

// Drain runs every queued job in order, including jobs enqueued by a job
// while it runs (a settled promise's reaction can itself resolve another
// promise), until the queue is empty.
func (q *JobQueue) Drain() {
	for len(q.jobs) > 0 {
		job := q.jobs[0]
		q.jobs = q.jobs[1:]
		job()
	}
}

// ActiveJobQueue is the queue Promise reactions enqueue into, set by the
// Context that owns the running interpreter — the same package-level-hook
// pattern HostGet/HostSet use to let builtins reach Context-level state
// without an import cycle back from runtime. A nil ActiveJobQueue (no
// Context has been entered) falls back to running a reaction inline rather
// than losing it, which only matters for direct interpreter.New() use
// outside the embedder API.
var ActiveJobQueue *JobQueue
