package util

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"strconv"

	"github.com/aws/aws-lambda-go/events"
	"philcali.me/forkify/internal/exceptions"
	"philcali.me/forkify/internal/routes"
)

func SerializeResponse[T interface{}, R interface{}](delayed func(T) R, thing T, err error, statusCode int) (events.APIGatewayV2HTTPResponse, error) {
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	body, err := json.Marshal(delayed(thing))
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	headers := map[string]string{
		"Content-Type":   "application/json",
		"Content-Length": strconv.Itoa(len(body)),
	}
	return events.APIGatewayV2HTTPResponse{
		StatusCode: statusCode,
		Headers:    headers,
		Body:       string(body),
	}, nil
}

func SerializeResponseOK[T interface{}, R interface{}](delayed func(T) R, thing T, err error) (events.APIGatewayV2HTTPResponse, error) {
	return SerializeResponse(delayed, thing, err, 200)
}

func Identity[T interface{}](thing T) T {
	return thing
}

// HTMLResponse wraps a rendered document.
func HTMLResponse(document string, err error) (events.APIGatewayV2HTTPResponse, error) {
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	return events.APIGatewayV2HTTPResponse{
		StatusCode: 200,
		Headers: map[string]string{
			"Content-Type":   "text/html; charset=utf-8",
			"Content-Length": strconv.Itoa(len(document)),
		},
		Body: document,
	}, nil
}

// BinaryResponse base64 encodes body as API Gateway expects for binary media.
func BinaryResponse(body []byte, contentType string, filename string, err error) (events.APIGatewayV2HTTPResponse, error) {
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	return events.APIGatewayV2HTTPResponse{
		StatusCode: 200,
		Headers: map[string]string{
			"Content-Type":        contentType,
			"Content-Disposition": "attachment; filename=\"" + filename + "\"",
		},
		Body:            base64.StdEncoding.EncodeToString(body),
		IsBase64Encoded: true,
	}, nil
}

func RequestParam(ctx context.Context, name string) string {
	if params, ok := ctx.Value(routes.PARAMS).(map[string]string); ok {
		return params[name]
	}
	return ""
}

// DecodeBody reads the JSON request body into out.
func DecodeBody(event events.APIGatewayV2HTTPRequest, out any) error {
	body := []byte(event.Body)
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(event.Body)
		if err != nil {
			return exceptions.Validation("Body is not valid base64: %s", err)
		}
		body = decoded
	}
	if err := json.Unmarshal(body, out); err != nil {
		return exceptions.Validation("Body is not valid JSON: %s", err)
	}
	return nil
}
