package audit

import (
	"context"
	"fmt"
	"path"
	"strings"

	"piiguard/internal/domain"
	"piiguard/internal/port"
)

// ObjectSink stores every ingested message as its own object, keyed by
// date and entry ID: <prefix>/2006/01/02/<id>.txt.
type ObjectSink struct {
	storage port.ObjectStorage
	bucket  string
	prefix  string
}

// NewObjectSink creates a sink uploading to bucket under prefix.
func NewObjectSink(storage port.ObjectStorage, bucket, prefix string) *ObjectSink {
	return &ObjectSink{storage: storage, bucket: bucket, prefix: strings.Trim(prefix, "/")}
}

func (s *ObjectSink) Name() string { return "s3://" + s.bucket + "/" + s.prefix }

// Key returns the object key an entry is stored under.
func (s *ObjectSink) Key(entry *domain.IngestEntry) string {
	return path.Join(s.prefix, entry.ReceivedAt.Format("2006/01/02"), entry.ID.String()+".txt")
}

func (s *ObjectSink) Append(ctx context.Context, entry *domain.IngestEntry) error {
	if entry == nil {
		return nil
	}
	body := entry.Text + "\n"
	_, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.bucket,
		Key:         s.Key(entry),
		Body:        strings.NewReader(body),
		ContentType: "text/plain; charset=utf-8",
		Size:        int64(len(body)),
	})
	if err != nil {
		return fmt.Errorf("objectSink.Append: %w", err)
	}
	return nil
}

func (s *ObjectSink) Close() error { return nil }
