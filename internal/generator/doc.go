// Package generator renders the Webpack Encore and PostCSS configuration
// files from embedded templates. The bundler template gets one directive per
// chosen JavaScript and CSS flavor; the PostCSS template is fixed.
package generator
