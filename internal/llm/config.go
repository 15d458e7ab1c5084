package llm

import "time"

// DefaultModel is used when a run does not select a model explicitly.
const DefaultModel = "gemini-2.5-flash"

// DefaultTemperature keeps scoring output consistent between runs.
const DefaultTemperature float32 = 0.2

// DefaultCallTimeout bounds one persona's model call. Inference can be slow,
// so the default is generous; the orchestrator frees the worker slot when a
// call times out.
const DefaultCallTimeout = 4 * time.Minute
