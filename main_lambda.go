//go:build lambda

package main

import (
	"context"
	"encoding/base64"
	"encoding/json"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/tidwall/gjson"
)

var jsonHeader = map[string]string{
	"Content-Type": "application/json",
}

// handler runs one simulated contest: generate an instance from the request
// parameters, solve it against the local judge, and return the outcome.
func handler(_ context.Context, event events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
	body := event.Body
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return errResp(400, "invalid base64 body")
		}
		body = string(decoded)
	}

	if !gjson.Valid(body) {
		return errResp(400, "invalid JSON body")
	}
	req := gjson.Parse(body)

	opts := GenOptions{
		Week:        int(req.Get("week").Int()),
		ResourceN:   int(req.Get("resourceN").Int()),
		ItemN:       int(req.Get("itemN").Int()),
		ChangeLimit: int(req.Get("changeLimit").Int()),
		Seed:        req.Get("seed").Int(),
	}
	if opts.Week < 0 || opts.ResourceN < 0 || opts.ItemN < 0 || opts.ChangeLimit < 0 {
		return errResp(400, "sizes must be non-negative")
	}

	result, err := runSim(opts, DefaultConfig())
	if err != nil {
		return errResp(500, err.Error())
	}

	respJSON, _ := json.Marshal(result)
	return events.LambdaFunctionURLResponse{StatusCode: 200, Headers: jsonHeader, Body: string(respJSON)}, nil
}

func errResp(code int, msg string) (events.LambdaFunctionURLResponse, error) {
	body, _ := json.Marshal(map[string]string{"error": msg})
	return events.LambdaFunctionURLResponse{StatusCode: code, Headers: jsonHeader, Body: string(body)}, nil
}

func main() {
	lambda.Start(handler)
}
