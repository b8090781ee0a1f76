package github

import "go.opentelemetry.io/otel"

const name = "github.com/kenjiO/repo-activity/pkg/integrations/github"

var tracer = otel.Tracer(name)
