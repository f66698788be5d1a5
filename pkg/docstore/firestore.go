package docstore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// Firestore adapts a Cloud Firestore client. Documents are written as maps produced by the
// JSON encoding, so timestamps are stored as RFC 3339 strings like the other backends.
type Firestore struct {
	client *firestore.Client
}

// NewFirestore dials Firestore for the given project. An empty credentials file falls back to
// application default credentials.
func NewFirestore(ctx context.Context, projectID, credentialsFile string) (*Firestore, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("init firestore: %w", err)
	}
	return &Firestore{client: client}, nil
}

// Close releases the client.
func (f *Firestore) Close() error {
	return f.client.Close()
}

func (f *Firestore) Get(ctx context.Context, collection, id string) (*Snapshot, error) {
	snap, err := f.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		if snap != nil && !snap.Exists() {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	return toSnapshot(snap)
}

func (f *Firestore) Set(ctx context.Context, collection, id string, doc interface{}) error {
	data, err := toMap(doc)
	if err != nil {
		return err
	}
	if _, err := f.client.Collection(collection).Doc(id).Set(ctx, data); err != nil {
		return fmt.Errorf("set %s/%s: %w", collection, id, err)
	}
	return nil
}

func (f *Firestore) Add(ctx context.Context, collection string, doc interface{}) (string, error) {
	data, err := toMap(doc)
	if err != nil {
		return "", err
	}
	ref, _, err := f.client.Collection(collection).Add(ctx, data)
	if err != nil {
		return "", fmt.Errorf("add %s: %w", collection, err)
	}
	return ref.ID, nil
}

func (f *Firestore) Update(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	if _, err := f.Get(ctx, collection, id); err != nil {
		return err
	}
	updates := make([]firestore.Update, 0, len(fields))
	for path, value := range fields {
		nv, err := normalize(value)
		if err != nil {
			return err
		}
		updates = append(updates, firestore.Update{Path: path, Value: nv})
	}
	if _, err := f.client.Collection(collection).Doc(id).Update(ctx, updates); err != nil {
		return fmt.Errorf("update %s/%s: %w", collection, id, err)
	}
	return nil
}

func (f *Firestore) Delete(ctx context.Context, collection, id string) error {
	if _, err := f.client.Collection(collection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	return nil
}

func (f *Firestore) Query(ctx context.Context, collection string, q Query) ([]Snapshot, error) {
	query := f.client.Collection(collection).Query
	for _, filter := range q.Filters {
		value, err := normalize(filter.Value)
		if err != nil {
			return nil, err
		}
		query = query.Where(filter.Field, "==", value)
	}
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	out := make([]Snapshot, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("query %s: %w", collection, err)
		}
		snap, err := toSnapshot(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, *snap)
	}
	return out, nil
}

func toSnapshot(doc *firestore.DocumentSnapshot) (*Snapshot, error) {
	raw, err := encode(doc.Data())
	if err != nil {
		return nil, err
	}
	return &Snapshot{ID: doc.Ref.ID, Data: raw}, nil
}
