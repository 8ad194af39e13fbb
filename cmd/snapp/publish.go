package main

import (
	"github.com/spf13/cobra"

	"github.com/snapp-dev/snapp/internal/publish"
)

func publishCmd(verbose *bool) *cobra.Command {
	var (
		opts   renderOptions
		key    string
		bucket string
		region string
	)

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Render the counter and upload the document to S3",
		Long: `Render the counter like 'snapp render' and upload the result to
the bucket configured under "publish" in snapp.json.

Credentials are read from AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and
AWS_SESSION_TOKEN. Without --key a random name is used.

Examples:
  snapp publish --key=index.html
  snapp publish --bucket=my-site --region=eu-west-1 --clicks=1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if bucket != "" {
				cfg.Publish.Bucket = bucket
			}
			if region != "" {
				cfg.Publish.Region = region
			}
			if err := cfg.ValidatePublish(); err != nil {
				return err
			}

			doc, rt, err := renderDocument(cmd, cfg, opts, *verbose)
			if err != nil {
				return err
			}
			defer rt.Close()

			logger := newLogger(cmd.ErrOrStderr(), cfg, *verbose)
			client, err := publish.NewS3Client(cmd.Context(), cfg.Publish)
			if err != nil {
				return err
			}
			p := publish.New(client, cfg.Publish.Bucket, cfg.Publish.Prefix, logger)
			res, err := p.Publish(cmd.Context(), key, doc)
			if err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Published s3://%s/%s (%d bytes)", res.Bucket, res.Key, res.Size)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "HTML document to render into")
	cmd.Flags().StringVarP(&opts.target, "target", "t", "", "Target selector (default from snapp.json)")
	cmd.Flags().StringVarP(&opts.mode, "mode", "m", "", "Insertion mode")
	cmd.Flags().IntVar(&opts.clicks, "clicks", 0, "Click events to dispatch before publishing")
	cmd.Flags().StringVarP(&key, "key", "k", "", "Object name under publish.prefix")
	cmd.Flags().StringVar(&bucket, "bucket", "", "Bucket (default from snapp.json)")
	cmd.Flags().StringVar(&region, "region", "", "Region (default from snapp.json)")

	return cmd
}
