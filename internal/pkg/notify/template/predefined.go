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
package template

import "context"

const (
	// ServiceStatusTemplate is the name of the status notification template.
	ServiceStatusTemplate = "service_status"

	LocaleEnglish = "en"
	LocaleChinese = "zh-CN"
)

// PredefinedTemplates contains the built-in notification templates
var PredefinedTemplates = []*Template{
	{
		ID:     "service_status_en",
		Name:   ServiceStatusTemplate,
		Locale: LocaleEnglish,
		Title:  "Service Status Notification",
		Content: `## <font color="{{.color}}">{{.title}}</font>

**Service**: {{.service_name}}
**Status**: <font color="{{.color}}">{{upper .status}}</font>
**Response Time**: **{{.response_time}}**
**URL**: **{{.url}}**
**Details**: {{.message}}
**Notified At**: **{{.time}}**`,
		Format:      "markdown",
		Description: "Service status change for markdown webhooks",
	},
	{
		ID:     "service_status_zh",
		Name:   ServiceStatusTemplate,
		Locale: LocaleChinese,
		Title:  "服务状态通知",
		Content: `## <font color="{{.color}}">{{.title}}</font>

**服务名称**: {{.service_name}}
**当前状态**: <font color="{{.color}}">{{upper .status}}</font>
**响应时间**: **{{.response_time}}**
**URL**: **{{.url}}**
**详细信息**: {{.message}}
**通知时间**: **{{.time}}**`,
		Format:      "markdown",
		Description: "企业微信服务状态通知模板",
	},
}

// InitializePredefinedTemplates initializes predefined templates in the repository
func InitializePredefinedTemplates(ctx context.Context, service *TemplateService) error {
	for _, tmpl := range PredefinedTemplates {
		copied := *tmpl
		if err := service.CreateTemplate(ctx, &copied); err != nil {
			return err
		}
	}
	return nil
}
