package dto

// Response is the envelope of every JSON reply.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

type HealthDTO struct {
	Status string `json:"status"`
	DBOK   bool   `json:"db_ok"`
}
