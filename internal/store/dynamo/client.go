package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"product-catalog-api/internal/config"
)

// NewClient builds the DynamoDB client for the configured mode. Offline
// mode targets a local DynamoDB endpoint with static credentials; online
// mode resolves region and credentials from the environment.
func NewClient(ctx context.Context, cfg *config.Config) (*dynamodb.Client, error) {
	if cfg.Offline {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion("localhost"),
			awsconfig.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider("local", "local", ""),
			),
		)
		if err != nil {
			return nil, fmt.Errorf("load offline aws config: %w", err)
		}

		return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
			o.BaseEndpoint = aws.String(cfg.DynamoEndpoint)
		}), nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return dynamodb.NewFromConfig(awsCfg), nil
}
