package minio

import (
	"MindGarden/internal/api/config"
	"MindGarden/internal/pkg/consts"
	"context"
	"fmt"
	log "log/slog"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/minio/minio-go/v7/pkg/lifecycle"
)

var (
	// Client is the shared MinIO client
	Client *minio.Client
	// BucketName holds exports
	BucketName string
)

const exportRuleID = "ExportAutoDeleteRule"

// Init connects to MinIO, creates the bucket when missing and makes sure
// exported files expire.
func Init(cfg config.MinIOConfig) error {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize minio client: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return fmt.Errorf("failed to connect to minio server: %w", err)
	}
	if !exists {
		if err = client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", cfg.Bucket, err)
		}
		log.Info("minio bucket created", "bucket", cfg.Bucket)
	}

	Client = client
	BucketName = cfg.Bucket
	return EnsureExportLifecycle(ctx)
}

// EnsureExportLifecycle adds a one day expiry rule on the export prefix
// unless a compatible rule already exists.
func EnsureExportLifecycle(ctx context.Context) error {
	lcConfig, err := Client.GetBucketLifecycle(ctx, BucketName)
	if err != nil {
		lcConfig = lifecycle.NewConfiguration()
	}

	const targetDays = 1
	for _, rule := range lcConfig.Rules {
		if rule.Status == "Enabled" &&
			rule.Expiration.Days == targetDays &&
			rule.RuleFilter.Prefix == consts.ExportObjectPrefix {
			log.Info("export lifecycle rule present", "ruleID", rule.ID)
			return nil
		}
	}

	lcConfig.Rules = append(lcConfig.Rules, lifecycle.Rule{
		ID:     exportRuleID,
		Status: "Enabled",
		RuleFilter: lifecycle.Filter{
			Prefix: consts.ExportObjectPrefix,
		},
		Expiration: lifecycle.Expiration{
			Days: targetDays,
		},
	})
	if err = Client.SetBucketLifecycle(ctx, BucketName, lcConfig); err != nil {
		return fmt.Errorf("failed to set lifecycle: %w", err)
	}
	log.Info("export lifecycle rule added", "bucket", BucketName)
	return nil
}
