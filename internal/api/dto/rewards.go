package dto

type RewardsBalanceResponse struct {
	Coins int64 `json:"coins"`
}

type RedeemRequest struct {
	Coins int64 `json:"coins"`
}

type RedeemResponse struct {
	Redeemed int64 `json:"redeemed"`
	Coins    int64 `json:"coins"`
}
