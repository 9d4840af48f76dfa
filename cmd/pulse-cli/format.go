// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package main

import (
	"fmt"
	"time"

	"github.com/go-arcade/pulse/internal/pkg/notify/template"
	"github.com/spf13/cobra"
)

func newFormatCmd() *cobra.Command {
	var (
		message string
		status  string
		locale  string
		utc     bool
	)
	cmd := &cobra.Command{
		Use:   "format",
		Short: "Print the WeCom markdown payload for a message",
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []template.FormatterOption
			if utc {
				opts = append(opts, template.WithLocation(time.UTC))
			}
			out, err := template.NewMarkdownFormatter(locale, opts...).Format(message, status, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&message, "message", "m", "", "alert message, e.g. \"Service api is DOWN\"")
	cmd.Flags().StringVarP(&status, "status", "s", "up", "service status")
	cmd.Flags().StringVar(&locale, "locale", template.LocaleEnglish, "en or zh-CN")
	cmd.Flags().BoolVar(&utc, "utc", false, "format the timestamp in UTC")
	_ = cmd.MarkFlagRequired("message")
	return cmd
}
