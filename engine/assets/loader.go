package assets

import "github.com/spaghettifunk/lumina/engine/renderer/metadata"

type Loader interface {
	Load(path string, name string) (*metadata.Resource, error)
	Unload(*metadata.Resource) error
}
