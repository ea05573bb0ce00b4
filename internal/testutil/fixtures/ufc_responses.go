package fixtures

// Merchant handler replies as the gateway sends them
const (
	RequestOKResponse = "TRANSACTION_ID: rHcPZ0KDb/6nR1DqA7yCGMoE3b0=\n"

	RequestErrorResponse = "error: wrong ip address\n"

	AuthorizeOKResponse = "RESULT: OK\r\n" +
		"RESULT_CODE: 000\r\n" +
		"RRN: 412345678901\r\n" +
		"APPROVAL_CODE: 123456\r\n" +
		"CARD_NUMBER: 4***********1111\r\n"

	AuthorizeFailedResponse = "RESULT: FAILED\n" +
		"RESULT_CODE: 116\n"

	StatusOKResponse = "RESULT: OK\n" +
		"RESULT_PS: FINISHED\n" +
		"RESULT_CODE: 000\n" +
		"3DSECURE: AUTHENTICATED\n" +
		"RRN: 412345678901\n" +
		"APPROVAL_CODE: 123456\n" +
		"CARD_NUMBER: 5***********4444\n" +
		"RECC_PMNT_ID: merchant-token-42\n" +
		"RECC_PMNT_EXPIRY: 1227\n"

	ReverseOKResponse = "RESULT: REVERSED\nRESULT_CODE: 400\n"

	RefundOKResponse = "RESULT: OK\nRESULT_CODE: 000\nREFUND_TRANS_ID: pQ4kD2mN1xR8sT0vW3yZ5aB7cE9=\n"

	BatchOKResponse = "RESULT: OK\n" +
		"RESULT_CODE: 500\n" +
		"FLD_074: 2\n" +
		"FLD_075: 1\n" +
		"FLD_076: 12\n" +
		"FLD_077: 0\n" +
		"FLD_086: 4500\n" +
		"FLD_087: 1500\n" +
		"FLD_088: 987600\n" +
		"FLD_089: 0\n"

	ChargeOKResponse = "TRANSACTION_ID: zX1cV2bN3mA4sD5fG6hJ7kL8qW9=\n" +
		"RESULT: OK\n" +
		"RESULT_CODE: 000\n" +
		"RRN: 412345678902\n" +
		"APPROVAL_CODE: 654321\n"

	CreditOKResponse = "RESULT: OK\nRESULT_CODE: 000\nREFUND_TRANS_ID: cR3d1tT4xN5=\n"
)
