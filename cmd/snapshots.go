package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// snapshotsCmd lists the roster snapshots stored in the bucket.
var snapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "List roster snapshots stored in the bucket",
	Long: `Lists the workbooks under the configured snapshot prefix.
Each key can be passed to reconcile as storage://<key>.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, l, err := bootstrap()
		if err != nil {
			return err
		}
		defer l.Sync()

		svc, err := newService(cfg, l, backends{storage: true})
		if err != nil {
			return err
		}

		objs, err := svc.ListSnapshots(cmd.Context())
		if err != nil {
			return err
		}

		l.Info("Snapshots", zap.String("bucket", cfg.Storage.Bucket), zap.Int("count", len(objs)))
		for _, o := range objs {
			l.Info("Snapshot",
				zap.String("source", "storage://"+o.Key),
				zap.Int64("size", o.Size),
				zap.Time("last_modified", o.LastModified),
			)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(snapshotsCmd)
}
