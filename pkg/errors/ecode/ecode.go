package ecode

// 业务错误码，0表示成功
const (
	Success = 0

	Unknown        = 10001
	ValidateErr    = 10002
	ParseErr       = 10003
	RequireAuthErr = 10004
	NotFoundErr    = 10005

	// 交易所返回的业务错误（retCode非0）
	ExchangeErr = 20001
	// 网络层错误（超时、连接失败）
	TransportErr = 20002
)
