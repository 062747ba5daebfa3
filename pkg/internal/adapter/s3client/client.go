package s3client

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/credentials/stscreds"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// ClientConfig selects how an S3 client authenticates. Static keys win over RoleARN, which wins
// over the default provider chain.
type ClientConfig struct {
	Region          string
	Endpoint        string // "" for AWS; LocalStack/MinIO otherwise
	ForcePathStyle  bool
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	RoleARN         string
	SessionName     string
	ExternalID      string
	Duration        time.Duration
}

// NewClient builds a client for cfg.
func NewClient(ctx context.Context, cfg ClientConfig) (*s3.Client, error) {
	switch {
	case cfg.AccessKeyID != "":
		return NewStaticClient(ctx, cfg.Region, cfg.AccessKeyID, cfg.SecretAccessKey, cfg.SessionToken, cfg.Endpoint, cfg.ForcePathStyle)
	case cfg.RoleARN != "":
		return NewAssumeRoleClient(ctx, cfg.Region, cfg.RoleARN, cfg.SessionName, cfg.Duration, cfg.ExternalID, nil, cfg.Endpoint, cfg.ForcePathStyle)
	default:
		return NewDefaultClient(ctx, cfg.Region, cfg.Endpoint, cfg.ForcePathStyle)
	}
}

// sharedResolver returns an endpoint resolver that maps BOTH S3 and STS to the same override.
func sharedResolver(endpoint string) aws.EndpointResolverWithOptionsFunc {
	return aws.EndpointResolverWithOptionsFunc(func(service, region string, _ ...interface{}) (aws.Endpoint, error) {
		switch service {
		case s3.ServiceID, sts.ServiceID:
			return aws.Endpoint{URL: endpoint, HostnameImmutable: true}, nil
		default:
			return aws.Endpoint{}, &aws.EndpointNotFoundError{}
		}
	})
}

func baseLoaders(region, endpoint string) []func(*config.LoadOptions) error {
	var loaders []func(*config.LoadOptions) error
	if region != "" {
		loaders = append(loaders, config.WithRegion(region))
	}
	if endpoint != "" {
		loaders = append(loaders, config.WithEndpointResolverWithOptions(sharedResolver(endpoint)))
	}
	return loaders
}

// NewDefaultClient uses the default credential chain (env, shared config, instance role).
func NewDefaultClient(ctx context.Context, region, endpoint string, forcePathStyle bool) (*s3.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx, baseLoaders(region, endpoint)...)
	if err != nil {
		return nil, err
	}
	return s3.NewFromConfig(cfg, func(o *s3.Options) { o.UsePathStyle = forcePathStyle }), nil
}

// NewStaticClient creates an S3 client using static credentials.
// If endpoint != "", it's used (LocalStack/MinIO). forcePathStyle=true for emulators.
func NewStaticClient(
	ctx context.Context,
	region string,
	accessKey string,
	secretKey string,
	sessionToken string, // "" if none
	endpoint string, // "" for AWS
	forcePathStyle bool,
) (*s3.Client, error) {
	if accessKey == "" || secretKey == "" {
		return nil, fmt.Errorf("s3client: static credentials need key id and secret")
	}
	loaders := append(baseLoaders(region, endpoint), config.WithCredentialsProvider(
		credentials.NewStaticCredentialsProvider(accessKey, secretKey, sessionToken),
	))
	cfg, err := config.LoadDefaultConfig(ctx, loaders...)
	if err != nil {
		return nil, err
	}
	return s3.NewFromConfig(cfg, func(o *s3.Options) { o.UsePathStyle = forcePathStyle }), nil
}

// NewAssumeRoleClient creates an S3 client by assuming an IAM role via STS.
// sourceCreds: underlying creds to call STS. If nil, default chain.
// externalID optional. duration capped by role MaxSessionDuration.
func NewAssumeRoleClient(
	ctx context.Context,
	region string,
	roleARN string,
	sessionName string,
	duration time.Duration,
	externalID string,
	sourceCreds aws.CredentialsProvider, // nil => default provider chain
	endpoint string, // optional S3/STS endpoint override
	forcePathStyle bool,
) (*s3.Client, error) {
	if roleARN == "" {
		return nil, fmt.Errorf("s3client: role ARN is required")
	}
	if sessionName == "" {
		sessionName = "audiovis"
	}
	loaders := baseLoaders(region, endpoint)
	if sourceCreds != nil {
		loaders = append(loaders, config.WithCredentialsProvider(sourceCreds))
	}
	baseCfg, err := config.LoadDefaultConfig(ctx, loaders...)
	if err != nil {
		return nil, err
	}

	// STS client also uses the same resolver (so it doesn't go to real AWS).
	stsClient := sts.NewFromConfig(baseCfg)

	provider := stscreds.NewAssumeRoleProvider(stsClient, roleARN, func(o *stscreds.AssumeRoleOptions) {
		o.RoleSessionName = sessionName
		if duration > 0 {
			o.Duration = duration
		}
		if externalID != "" {
			o.ExternalID = &externalID
		}
	})

	assumed := baseCfg
	assumed.Credentials = aws.NewCredentialsCache(provider)

	return s3.NewFromConfig(assumed, func(o *s3.Options) { o.UsePathStyle = forcePathStyle }), nil
}
