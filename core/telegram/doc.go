// Package telegram is the chat transport of the bot.
//
// It wraps telebot's raw Bot API call so that every request yields one of three
// shapes the reconciler can act on:
//
//   - Response{OK: true, MessageID: n}: accepted.
//   - Response{OK: false, ErrorCode, Description}: rejected by the Bot API.
//     NotModified() identifies the "message is not modified" rejection of an edit.
//   - error wrapping ErrTransport: nothing usable came back (network error,
//     timeout, non-JSON body).
//
// Messages are addressed by chat id (numeric or @channelname) and optional forum
// topic (message_thread_id).
package telegram
