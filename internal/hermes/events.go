package hermes

import "time"

type CalculationCompletedEvent struct {
	CalculationID string    `json:"calculation_id"`
	Source        string    `json:"source"`
	Count         int       `json:"count"`
	Weighted      bool      `json:"weighted"`
	Result        float64   `json:"result"`
	Timestamp     time.Time `json:"timestamp"`
}

type CalculationRejectedEvent struct {
	Source    string    `json:"source"`
	Kind      string    `json:"kind"`
	Error     string    `json:"error"`
	Timestamp time.Time `json:"timestamp"`
}

// CalculationRequest is the payload accepted on SubjectCalculationRequest.
// Numbers/Weights take precedence over their token forms.
type CalculationRequest struct {
	Numbers      []float64 `json:"numbers,omitempty"`
	Weights      []float64 `json:"weights,omitempty"`
	Tokens       []string  `json:"tokens,omitempty"`
	WeightTokens []string  `json:"weight_tokens,omitempty"`
}

type CalculationReply struct {
	CalculationID string  `json:"calculation_id,omitempty"`
	Result        float64 `json:"result"`
	Error         string  `json:"error,omitempty"`
	Kind          string  `json:"kind,omitempty"`
}
