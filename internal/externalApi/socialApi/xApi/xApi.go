package xApi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/KotFed0t/daily_results_bot/config"
	"github.com/KotFed0t/daily_results_bot/internal/externalApi"
	"github.com/KotFed0t/daily_results_bot/internal/model/xModel"
	"github.com/KotFed0t/daily_results_bot/utils"
	"github.com/dghubble/oauth1"
	"github.com/go-resty/resty/v2"
)

const tweetsUrl = "/2/tweets"

type XApi struct {
	client *resty.Client
}

// New signs every request with OAuth 1.0a user context built from the four X credentials.
func New(cfg *config.Config) *XApi {
	oauthCfg := oauth1.NewConfig(cfg.API.XApi.ConsumerKey, cfg.API.XApi.ConsumerSecret)
	token := oauth1.NewToken(cfg.API.XApi.AccessToken, cfg.API.XApi.AccessTokenSecret)

	client := resty.NewWithClient(oauthCfg.Client(context.Background(), token)).
		SetDebug(cfg.API.Debug).
		SetTimeout(cfg.API.Timeout).
		SetBaseURL(cfg.API.XApi.Url)
	return &XApi{client: client}
}

func (a *XApi) Name() string {
	return "x"
}

// Publish creates one status update. There is no retry.
func (a *XApi) Publish(ctx context.Context, text string) error {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "XApi.Publish"

	slog.Debug("Publish start", slog.String("rqID", rqID), slog.String("op", op))

	resp, err := a.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(xModel.CreateTweetRequest{Text: text}).
		Post(tweetsUrl)
	if err != nil {
		slog.Error("error while dialing XApi", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return fmt.Errorf("%w: %s", externalApi.ErrPublish, err.Error())
	}

	if !resp.IsSuccess() {
		slog.Error(
			"XApi responded with failure",
			slog.String("rqID", rqID),
			slog.String("op", op),
			slog.Int("status", resp.StatusCode()),
			slog.String("body", resp.String()),
		)
		return fmt.Errorf("%w: status %d", externalApi.ErrPublish, resp.StatusCode())
	}

	created := xModel.CreateTweetResponse{}
	if err = json.Unmarshal(resp.Body(), &created); err != nil {
		slog.Warn("can't unmarshall response into xModel.CreateTweetResponse", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
	}

	slog.Info("status published", slog.String("rqID", rqID), slog.String("op", op), slog.String("tweetID", created.Data.ID))

	return nil
}
