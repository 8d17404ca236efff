// package policy holds the pure playlist domain rules: reconciliation of
// loaded playlists against backing storage, caption-keyed merge of imported
// batches, and title resolution.
package policy
