package calc

import (
	"context"
	"encoding/json"

	apperrors "github.com/leylaiskandarli/average-squares/internal/errors"
	"github.com/leylaiskandarli/average-squares/internal/hermes"
	"github.com/leylaiskandarli/average-squares/internal/store"
)

// HandleRequest answers a hermes.CalculationRequest received over NATS.
// Failures are reported in the reply rather than dropped.
func (s *Service) HandleRequest(ctx context.Context, data []byte) interface{} {
	var req hermes.CalculationRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return hermes.CalculationReply{
			Error: "invalid request body",
			Kind:  string(apperrors.ErrorTypeInvalidArgument),
		}
	}

	in, err := requestInput(req)
	if err != nil {
		s.Reject(store.SourceNATS, err)
		return errorReply(err)
	}

	out, err := s.Calculate(ctx, in)
	if err != nil {
		return errorReply(err)
	}
	return hermes.CalculationReply{
		CalculationID: out.Calculation.ID.String(),
		Result:        out.Calculation.Result,
	}
}

func requestInput(req hermes.CalculationRequest) (Input, error) {
	numbers, err := Resolve(req.Numbers, req.Tokens)
	if err != nil {
		return Input{}, err
	}
	weights, err := Resolve(req.Weights, req.WeightTokens)
	if err != nil {
		return Input{}, err
	}
	return Input{Numbers: numbers, Weights: weights, Source: store.SourceNATS}, nil
}

func errorReply(err error) hermes.CalculationReply {
	return hermes.CalculationReply{
		Error: err.Error(),
		Kind:  string(apperrors.KindOf(err)),
	}
}
