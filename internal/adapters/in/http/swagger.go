package http

import (
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

var registerDocOnce sync.Once

// registerSwaggerDoc publishes doc under the default swag instance, which is
// what echo-swagger serves as doc.json. swag panics on a second registration
// of the same name, so only the first document wins.
func registerSwaggerDoc(doc *openapi3.T) error {
	data, err := doc.MarshalJSON()
	if err != nil {
		return err
	}

	registerDocOnce.Do(func() {
		swag.Register(swag.Name, &swag.Spec{
			Title:            doc.Info.Title,
			Version:          doc.Info.Version,
			Description:      doc.Info.Description,
			InfoInstanceName: swag.Name,
			SwaggerTemplate:  string(data),
		})
	})
	return nil
}
