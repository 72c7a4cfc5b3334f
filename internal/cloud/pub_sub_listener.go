// Copyright 2024 Google, LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cloud provides components for interacting with Google Cloud services.
// This file defines a generic, reusable Pub/Sub message listener. Receiving
// messages is kept apart from processing them: each message is handed to a
// "Command" from the chain of responsibility package.
//
// Logic Flow:
//  1. An instance of PubSubListener is created with a client and a subscription ID.
//  2. A "Command" (a piece of business logic) is attached to this listener.
//  3. The `Listen` method starts a goroutine that receives from the subscription.
//  4. Each message is handled by `Handle`, which runs the command with the
//     message data as the chain input.
//  5. The message is acknowledged only if the command completed without errors,
//     so failures are redelivered under the subscription's retry policy.
//
// Structs:
//   - PubSubListener: Manages the connection to a Pub/Sub subscription and holds
//     the command that will process incoming messages.
package cloud

import (
	"context"
	"errors"
	"log/slog"

	"cloud.google.com/go/pubsub"
	"github.com/jaycherian/gcp-go-fashion-director/internal/core/cor"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// PubSubListener connects a subscription to a processing command.
type PubSubListener struct {
	client       *pubsub.Client
	subscription *pubsub.Subscription
	command      cor.Command
}

// NewPubSubListener is the constructor for creating a PubSubListener.
//
// Inputs:
//   - pubsubClient: An authenticated *pubsub.Client for connecting to the service.
//   - subscriptionID: The string ID of the subscription (e.g., "director-requests-sub").
//   - command: The command executed for each message. May be nil and set later.
//
// Outputs:
//   - *PubSubListener: A pointer to the newly created and configured listener.
//   - error: An error if the client is missing.
func NewPubSubListener(
	pubsubClient *pubsub.Client,
	subscriptionID string,
	command cor.Command,
) (*PubSubListener, error) {
	if pubsubClient == nil {
		return nil, errors.New("pubsub listener needs a client")
	}
	return &PubSubListener{
		client:       pubsubClient,
		subscription: pubsubClient.Subscription(subscriptionID),
		command:      command,
	}, nil
}

// SetCommand attaches a command to the listener unless one is already set.
func (m *PubSubListener) SetCommand(command cor.Command) {
	if m.command == nil {
		m.command = command
	}
}

// Handle runs the listener's command over one message payload and reports
// whether the payload was processed without errors.
//
// Inputs:
//   - ctx: The parent context; a span is started under it.
//   - data: The raw message data, placed in the chain context under cor.CtxIn.
//
// Outputs:
//   - bool: True when the command finished with no errors recorded.
func (m *PubSubListener) Handle(ctx context.Context, data []byte) bool {
	tracer := otel.Tracer("message-listener")
	spanCtx, span := tracer.Start(ctx, "receive-message")
	defer span.End()
	span.SetAttributes(attribute.Int("msg.size", len(data)))

	if m.command == nil {
		span.SetStatus(codes.Error, "no command attached")
		slog.ErrorContext(spanCtx, "message received before a command was attached", "subscription", m.subscription.String())
		return false
	}

	chainCtx := cor.NewBaseContext()
	chainCtx.SetContext(spanCtx)
	chainCtx.Add(cor.CtxIn, string(data))
	defer chainCtx.Close()

	m.command.Execute(chainCtx)

	if chainCtx.HasErrors() {
		span.SetStatus(codes.Error, "failed")
		for name, e := range chainCtx.GetErrors() {
			slog.ErrorContext(spanCtx, "error executing chain", "command", name, "error", e)
		}
		return false
	}
	span.SetStatus(codes.Ok, "success")
	return true
}

// Listen starts receiving in a background goroutine until ctx is canceled.
// Messages that fail are neither acked nor nacked, so they are redelivered
// after their acknowledgement deadline.
func (m *PubSubListener) Listen(ctx context.Context) {
	slog.Info("listening", "subscription", m.subscription.String())

	go func() {
		err := m.subscription.Receive(ctx, func(_ context.Context, msg *pubsub.Message) {
			if m.Handle(ctx, msg.Data) {
				msg.Ack()
			}
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("error receiving data", "subscription", m.subscription.String(), "error", err)
		}
	}()
}
