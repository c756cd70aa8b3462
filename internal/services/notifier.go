package services

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"concierge/internal/datastore/redis_store"

	"github.com/gojek/heimdall/v7/httpclient"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
)

// ServiceNotifier fans loyalty events out to the redis queue and, when a
// webhook URL is configured, to the external collaborator over HTTP. Both
// paths are fire-and-forget: the operation that produced the event has
// already committed, so failures are logged and dropped.
type ServiceNotifier struct {
	container     *do.Injector
	redisDB       redis.UniversalClient
	serviceConfig *ServiceConfig
	httpClient    *httpclient.Client
}

func NewServiceNotifier(container *do.Injector) (*ServiceNotifier, error) {
	db, err := do.InvokeNamed[redis.UniversalClient](container, "redis-db")
	if err != nil {
		return nil, err
	}

	serviceConfig, err := do.Invoke[*ServiceConfig](container)
	if err != nil {
		return nil, err
	}

	client := httpclient.NewClient(
		httpclient.WithHTTPTimeout(5*time.Second),
		httpclient.WithRetryCount(2),
	)

	return &ServiceNotifier{container, db, serviceConfig, client}, nil
}

func (service *ServiceNotifier) Publish(ctx context.Context, eventType string, payload any) {
	if err := redis_store.PushEvent(ctx, service.redisDB, eventType, payload); err != nil {
		log.Println("notifier: queue push failed:", "event:", eventType, "err:", err)
	}

	webhookURL, _ := service.serviceConfig.GetStringConfig(ctx, CONFIG_WEBHOOK_URL, "")
	if webhookURL == "" {
		return
	}

	go service.postWebhook(webhookURL, eventType, payload)
}

func (service *ServiceNotifier) postWebhook(url string, eventType string, payload any) {
	body, err := json.Marshal(map[string]any{
		"type":    eventType,
		"payload": payload,
	})
	if err != nil {
		log.Println("notifier: marshal failed:", "event:", eventType, "err:", err)
		return
	}

	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	headers.Set("X-Event-Type", eventType)

	resp, err := service.httpClient.Post(url, bytes.NewReader(body), headers)
	if err != nil {
		log.Println("notifier: webhook failed:", "event:", eventType, "err:", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		log.Println("notifier: webhook rejected:", "event:", eventType, "status:", resp.StatusCode)
	}
}
