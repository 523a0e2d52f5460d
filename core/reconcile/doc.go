// Package reconcile keeps one status message per channel in sync with freshly
// rendered text.
//
// Each channel key is in one of two states: no message, or a tracked message id
// held in a KeyStore. Reconcile moves between them:
//
//	no message  -> send            ok: store id (and pin if configured)
//	tracked     -> edit            ok / "not modified": keep id
//	tracked     -> edit rejected   drop id, send a new message immediately
//	any         -> transport error keep state, retry next cycle
//
// Texts are trimmed to the transport's length limit first, see TrimText.
//
// # Usage
//
//	rec := reconcile.New(client, store, reconcile.Options{MaxLength: 3000, TruncatedMarker: "..."}, logger)
//	res, err := rec.Reconcile(ctx, channel, text)
//	if err != nil {
//	    logger.Warn("reconcile failed", zap.String("action", string(res.Action)), zap.Error(err))
//	}
package reconcile
