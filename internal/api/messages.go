package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/staffdesk/staffdesk/internal/session"
)

// SendMessage sends a message from senderID to recipientID.
func (c *Client) SendMessage(ctx context.Context, msg Message, senderID, recipientID session.UserID) (*Message, error) {
	var sent Message
	err := c.do(ctx, request{
		Method: http.MethodPost,
		Route:  "/customer/messages",
		Path:   "/customer/messages",
		Query:  query("senderId", senderID.String(), "recipientId", recipientID.String()),
		Body:   msg,
	}, &sent)
	if err != nil {
		return nil, err
	}
	return &sent, nil
}

// Mailbox returns the messages sent and received by userID.
func (c *Client) Mailbox(ctx context.Context, userID session.UserID) (*Mailbox, error) {
	var box Mailbox
	err := c.do(ctx, request{
		Method: http.MethodGet,
		Route:  "/customer/messages/{userId}",
		Path:   fmt.Sprintf("/customer/messages/%d", userID),
	}, &box)
	if err != nil {
		return nil, err
	}
	return &box, nil
}

// MarkMessageRead flags a message as read.
func (c *Client) MarkMessageRead(ctx context.Context, id int64) error {
	return c.do(ctx, request{
		Method: http.MethodPost,
		Route:  "/customer/messages/{id}/read",
		Path:   fmt.Sprintf("/customer/messages/%d/read", id),
	}, nil)
}

// DeleteMessage removes a message.
func (c *Client) DeleteMessage(ctx context.Context, id int64) error {
	return c.do(ctx, request{
		Method: http.MethodDelete,
		Route:  "/customer/messages/{id}",
		Path:   fmt.Sprintf("/customer/messages/%d", id),
	}, nil)
}
