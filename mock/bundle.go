package mock

import "github.com/fwojciec/docset"

var (
	_ docset.InfoWriter = (*InfoWriter)(nil)
	_ docset.MetaWriter = (*MetaWriter)(nil)
)

// InfoWriter is a mock implementation of docset.InfoWriter.
type InfoWriter struct {
	WriteInfoFn func(info *docset.BundleInfo) error
}

func (w *InfoWriter) WriteInfo(info *docset.BundleInfo) error {
	return w.WriteInfoFn(info)
}

// MetaWriter is a mock implementation of docset.MetaWriter.
type MetaWriter struct {
	WriteMetaFn func(meta *docset.BundleMeta) error
}

func (w *MetaWriter) WriteMeta(meta *docset.BundleMeta) error {
	return w.WriteMetaFn(meta)
}
