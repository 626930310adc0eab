// Package integration holds thin clients for the third-party services the
// backend talks to: Slack incoming webhooks, the Pipedrive REST API, Amazon
// SES for mail and Amazon SNS for topic fanout. Each client wraps one vendor
// API with minimal transformation.
package integration
