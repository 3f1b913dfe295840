package util

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
)

type LambdaRequest = events.APIGatewayProxyRequest
type LambdaResponse = events.APIGatewayProxyResponse

// ErrorResponse is the body of every failed gallery request.
type ErrorResponse struct {
	Success bool     `json:"success"`
	Error   string   `json:"error"`
	Items   []string `json:"items"`
}

// CORSHeaders returns a fresh copy of the header set attached to every
// response, preflight included.
func CORSHeaders() map[string]string {
	return map[string]string{
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Methods": "GET, OPTIONS",
		"Access-Control-Allow-Headers": "Content-Type",
		"Content-Type":                 "application/json",
	}
}

func PreflightResp() *LambdaResponse {
	return &events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers:    CORSHeaders(),
		Body:       "",
	}
}

// JSONResp marshals payload as the response body. A payload that cannot be
// marshalled turns into a bare 500 so the caller still gets JSON back.
func JSONResp(code int, payload any) (*LambdaResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		slog.Error("could not marshal response", slog.Any("error", err))
		return &events.APIGatewayProxyResponse{
			StatusCode: http.StatusInternalServerError,
			Headers:    CORSHeaders(),
			Body:       `{"success":false,"error":"failed to marshal JSON response","items":[]}`,
		}, nil
	}
	return &events.APIGatewayProxyResponse{
		StatusCode: code,
		Headers:    CORSHeaders(),
		Body:       string(body),
	}, nil
}

func GetErrorResp(err error) (*LambdaResponse, error) {
	return JSONResp(http.StatusInternalServerError, ErrorResponse{
		Success: false,
		Error:   err.Error(),
		Items:   []string{},
	})
}

// GetHostSite reads the site URL Netlify passes in the client context.
// Returns "" when the function runs outside Netlify.
func GetHostSite(ctx context.Context) string {
	lc, ok := lambdacontext.FromContext(ctx)
	if !ok {
		return ""
	}
	encoded := lc.ClientContext.Custom["netlify"]
	if encoded == "" {
		return ""
	}
	jsonData, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		slog.Debug("could not decode netlify base64", slog.Any("error", err))
		return ""
	}
	var netlifyData map[string]string
	if err := json.Unmarshal(jsonData, &netlifyData); err != nil {
		slog.Debug("could not decode netlify json", slog.Any("error", err))
		return ""
	}
	return netlifyData["site_url"]
}

func GetRequestID(ctx context.Context) string {
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		return lc.AwsRequestID
	}
	return ""
}
