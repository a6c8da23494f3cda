// Package backup copies the local record store to an S3-compatible bucket
// and restores it from there. Every record becomes one JSON object named
// <prefix>/<key>.json.
package backup

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/ecovate/internal/logging"
)

const (
	objectSuffix       = ".json"
	defaultParallelism = 4
)

// ObjectStore is the part of the S3 API used for backups. *s3.Client
// satisfies it.
type ObjectStore interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// Source is the record store being backed up.
type Source interface {
	Dump(ctx context.Context) (map[string][]byte, error)
	PutRaw(ctx context.Context, key string, raw []byte) error
}

type Exporter struct {
	src         Source
	client      ObjectStore
	bucket      string
	prefix      string
	parallelism int
	logger      logging.Logger
}

func NewExporter(src Source, client ObjectStore, bucket, prefix string, parallelism int, logger logging.Logger) *Exporter {
	if parallelism <= 0 {
		parallelism = defaultParallelism
	}
	return &Exporter{
		src:         src,
		client:      client,
		bucket:      bucket,
		prefix:      strings.Trim(prefix, "/"),
		parallelism: parallelism,
		logger:      logger.With("component", "backup"),
	}
}

func (e *Exporter) objectKey(recordKey string) string {
	if e.prefix == "" {
		return recordKey + objectSuffix
	}
	return e.prefix + "/" + recordKey + objectSuffix
}

func (e *Exporter) listPrefix() string {
	if e.prefix == "" {
		return ""
	}
	return e.prefix + "/"
}

// Export uploads every record and returns how many were written.
func (e *Exporter) Export(ctx context.Context) (int, error) {
	records, err := e.src.Dump(ctx)
	if err != nil {
		return 0, fmt.Errorf("dump records: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.parallelism)

	for key, raw := range records {
		g.Go(func() error {
			_, err := e.client.PutObject(ctx, &s3.PutObjectInput{
				Bucket:      aws.String(e.bucket),
				Key:         aws.String(e.objectKey(key)),
				Body:        bytes.NewReader(raw),
				ContentType: aws.String("application/json"),
			})
			if err != nil {
				return fmt.Errorf("upload %s: %w", key, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	e.logger.Info(ctx, "backup exported", "records", len(records), "bucket", e.bucket)
	return len(records), nil
}

// Import downloads every backed-up record and writes it back to the store.
// Downloads run in parallel; writes are applied one by one in key order.
func (e *Exporter) Import(ctx context.Context) (int, error) {
	keys, err := e.list(ctx)
	if err != nil {
		return 0, err
	}

	var (
		mu      sync.Mutex
		fetched = make(map[string][]byte, len(keys))
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.parallelism)

	for _, objKey := range keys {
		g.Go(func() error {
			out, err := e.client.GetObject(gctx, &s3.GetObjectInput{
				Bucket: aws.String(e.bucket),
				Key:    aws.String(objKey),
			})
			if err != nil {
				return fmt.Errorf("download %s: %w", objKey, err)
			}
			defer out.Body.Close()

			raw, err := io.ReadAll(out.Body)
			if err != nil {
				return fmt.Errorf("read %s: %w", objKey, err)
			}
			mu.Lock()
			fetched[objKey] = raw
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	for _, objKey := range keys {
		recordKey := strings.TrimSuffix(strings.TrimPrefix(objKey, e.listPrefix()), objectSuffix)
		if err := e.src.PutRaw(ctx, recordKey, fetched[objKey]); err != nil {
			return 0, fmt.Errorf("restore %s: %w", recordKey, err)
		}
	}

	e.logger.Info(ctx, "backup imported", "records", len(keys), "bucket", e.bucket)
	return len(keys), nil
}

func (e *Exporter) list(ctx context.Context) ([]string, error) {
	p := s3.NewListObjectsV2Paginator(e.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(e.bucket),
		Prefix: aws.String(e.listPrefix()),
	})

	var keys []string
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list backup objects: %w", err)
		}
		for _, obj := range page.Contents {
			k := aws.ToString(obj.Key)
			if strings.HasSuffix(k, objectSuffix) {
				keys = append(keys, k)
			}
		}
	}
	sort.Strings(keys)
	return keys, nil
}
