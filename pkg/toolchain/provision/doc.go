/*
Package provision makes sure an NDK release is present on disk, downloading
and extracting it when its installation directory is missing.

Downloading and extracting are behind the Fetcher and Extractor interfaces;
HTTPFetcher and ZipExtractor are the implementations used by default.
*/
package provision
