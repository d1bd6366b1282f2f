package xModel

type CreateTweetRequest struct {
	Text string `json:"text"`
}

type CreateTweetResponse struct {
	Data struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	} `json:"data"`
}
