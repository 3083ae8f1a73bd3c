package assets

import "github.com/spaghettifunk/stilllife/engine/renderer/metadata"

type Loader interface {
	// Load returns the decoded file; Resource.Data holds a loader specific type.
	Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error)
	Unload(*metadata.Resource) error
}
