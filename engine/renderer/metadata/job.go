package metadata

/**
 * @brief A unit of work for the job system. OnStart runs on a worker and
 * must not touch the graphics context; OnComplete and OnFailure are
 * invoked later from JobSystem.Update on the main thread.
 */
type JobTask struct {
	/** @brief Data handed to OnStart. */
	InputParams interface{}
	/** @brief The work itself. Its result is passed to OnComplete. */
	OnStart func(params interface{}) (interface{}, error)
	/** @brief Called with the result of a successful OnStart. */
	OnComplete func(result interface{})
	/** @brief Called with the error of a failed OnStart. */
	OnFailure func(err error)
}
