// Package domain defines the core entities of the AI-PaaS console:
// the Service catalog entry and its five child collections (workflows,
// datasets, models, prompts, monitoring records), together with the
// input and composite types used by the service and handler layers.
package domain
