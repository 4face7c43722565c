package hermes

const (
	StreamName   = "SQUARES_EVENTS"
	StreamMaxAge = "168h" // 7 days

	// QueueGroup spreads calculation requests across service replicas.
	QueueGroup = "squares"

	// SubjectCalculationRequest is answered with a CalculationReply.
	SubjectCalculationRequest = "squares.request.calculate"

	eventPrefix = "squares.calculation."
)

// StreamSubjects lists the subjects captured by the JetStream stream.
// Requests are request/reply traffic and are not persisted.
var StreamSubjects = []string{eventPrefix + ">"}

func SubjectCalculationCompleted(id string) string { return eventPrefix + id + ".completed" }
func SubjectCalculationRejected(source string) string { return eventPrefix + "rejected." + source }
