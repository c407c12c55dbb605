package dto

import "jobboard/internal/pkg/jwt"

type TokenPairResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

func NewTokenPairResponse(p jwt.Pair) TokenPairResponse {
	return TokenPairResponse{Access: p.Access, Refresh: p.Refresh}
}
