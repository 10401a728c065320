package lambda

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ContentTypeHeader is set on every response
const ContentTypeHeader = "content-type"

// ContentTypeJSON is the only content type produced
const ContentTypeJSON = "application/json"

// internalErrorMessage describes a failure that carries no message
const internalErrorMessage = "Internal Server Error"

// APIGatewayHandler is the signature registered with the Lambda runtime
type APIGatewayHandler func(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

// FromAPIGateway converts an API Gateway proxy event to a generic request
func FromAPIGateway(event events.APIGatewayProxyRequest) *Request {
	requestID := event.RequestContext.RequestID
	if requestID == "" {
		requestID = uuid.New().String()
	}

	return &Request{
		RequestID:   requestID,
		Method:      event.HTTPMethod,
		Path:        event.Path,
		Headers:     event.Headers,
		QueryParams: event.QueryStringParameters,
		Body:        []byte(event.Body),
		PathParams:  event.PathParameters,
	}
}

// ToAPIGateway converts a generic response to an API Gateway proxy response
func ToAPIGateway(resp *Response) events.APIGatewayProxyResponse {
	headers := make(map[string]string, len(resp.Headers)+1)
	for k, v := range resp.Headers {
		headers[k] = v
	}
	if _, ok := headers[ContentTypeHeader]; !ok {
		headers[ContentTypeHeader] = ContentTypeJSON
	}

	return events.APIGatewayProxyResponse{
		StatusCode: resp.StatusCode,
		Headers:    headers,
		Body:       string(resp.Body),
	}
}

// Adapt wraps a generic handler for the Lambda runtime. A handler error,
// nil response or panic is turned into a 500 envelope so the runtime never
// sees an error.
func Adapt(handler HandlerFunc, logger *logrus.Logger) APIGatewayHandler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return func(ctx context.Context, event events.APIGatewayProxyRequest) (out events.APIGatewayProxyResponse, err error) {
		start := time.Now()
		req := FromAPIGateway(event)

		entry := logger.WithFields(logrus.Fields{
			"request_id": req.RequestID,
			"method":     req.Method,
			"path":       req.Path,
		})

		defer func() {
			if r := recover(); r != nil {
				entry.WithField("panic", r).Error("Handler panicked")
				out, err = ToAPIGateway(ErrorResponse(fmt.Errorf("%v", r))), nil
			}
		}()

		entry.WithFields(logrus.Fields{
			"path_params":  req.PathParams,
			"query_params": req.QueryParams,
		}).Info("Invocation received")

		resp, herr := handler(ctx, req)
		if herr != nil || resp == nil {
			entry.WithError(herr).Error("Handler failed")
			resp = ErrorResponse(herr)
		}

		entry.WithFields(logrus.Fields{
			"status":   resp.StatusCode,
			"duration": time.Since(start).String(),
		}).Info("Invocation completed")

		return ToAPIGateway(resp), nil
	}
}

// ErrorResponse builds the 500 envelope describing err
func ErrorResponse(err error) *Response {
	message := internalErrorMessage
	if err != nil && err.Error() != "" {
		message = err.Error()
	}
	body, _ := json.Marshal(map[string]string{"error": message})

	return &Response{
		StatusCode: 500,
		Headers:    map[string]string{ContentTypeHeader: ContentTypeJSON},
		Body:       body,
	}
}
