package request

// DTOs live in model/request.go since the create/update payloads are
// shared with the service layer; this file only keeps the response
// envelope shapes.

type listResp struct {
	Data  any `json:"data"`
	Count int `json:"count"`
}
